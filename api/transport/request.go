package transport

type TodoCreateRequest struct {
	Text string `json:"text"`
}

type CategoryRequest struct {
	Category string `json:"category"`
}

// ActiveSectionRequest carries the scroll geometry measured by the browser.
// Anchors are top offsets keyed by section id; document-relative unless
// AnchorsRelative marks them as getBoundingClientRect().top values.
type ActiveSectionRequest struct {
	ScrollY         float64            `json:"scroll_y"`
	ViewportHeight  float64            `json:"viewport_height"`
	Anchors         map[string]float64 `json:"anchors"`
	AnchorsRelative bool               `json:"anchors_relative"`
	Current         string             `json:"current"`
	Fragment        string             `json:"fragment"`
	// NavigateTo is set when the user clicked a navbar link.
	NavigateTo string `json:"navigate_to"`
}

type MemberRequest struct {
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Role         string   `json:"role"`
	JoinDate     string   `json:"join_date"`
	Achievements []string `json:"achievements"`
	// AchievementsText accepts one achievement per line.
	AchievementsText string `json:"achievements_text"`
}

type GameRequest struct {
	Format        string `json:"format"`
	Phase         string `json:"phase"`
	Tournament    string `json:"tournament"`
	ImageURL      string `json:"image_url"`
	ReplayURL     string `json:"replay_url"`
	Players       string `json:"players"`
	DescriptionIT string `json:"description_it"`
	DescriptionEN string `json:"description_en"`
}

type FAQRequest struct {
	QuestionIT string `json:"question_it"`
	QuestionEN string `json:"question_en"`
	AnswerIT   string `json:"answer_it"`
	AnswerEN   string `json:"answer_en"`
}

type FooterResourceRequest struct {
	TitleIT  string `json:"title_it"`
	TitleEN  string `json:"title_en"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

type AdminRequest struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PasswordRequest struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
}

type AdminActiveRequest struct {
	Active bool `json:"active"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TTL      int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	TTL int `json:"ttl_seconds"`
}
