package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelopeRendering(t *testing.T) {
	assert.JSONEq(t, `{"status":"success","data":[1,2]}`, Success([]int{1, 2}).String())
	assert.JSONEq(t, `{"status":"success","data":"ciao","meta":{"locale":"it"}}`, Localized("ciao", "it").String())
	assert.JSONEq(t,
		`{"status":"error","code":"DEGRADED","error":"dependencies unhealthy","meta":{"details":{"redis":false}}}`,
		Failure("DEGRADED", "dependencies unhealthy").WithDetails(map[string]bool{"redis": false}).String())
}
