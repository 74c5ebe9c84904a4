package domain

import "time"

// Member represents a player shown on the roster.
type Member struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Image        string    `json:"image"`
	Role         string    `json:"role"`
	JoinDate     string    `json:"join_date"`
	Achievements []string  `json:"achievements"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BestGame is a highlighted match with a replay link.
type BestGame struct {
	ID            string    `json:"id"`
	Format        string    `json:"format"`
	Phase         string    `json:"phase"`
	Tournament    string    `json:"tournament"`
	ImageURL      string    `json:"image_url"`
	ReplayURL     string    `json:"replay_url"`
	Players       string    `json:"players"`
	DescriptionIT string    `json:"description_it"`
	DescriptionEN string    `json:"description_en"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FAQ is a bilingual question/answer pair.
type FAQ struct {
	ID         string    `json:"id"`
	QuestionIT string    `json:"question_it"`
	QuestionEN string    `json:"question_en"`
	AnswerIT   string    `json:"answer_it"`
	AnswerEN   string    `json:"answer_en"`
	Position   int       `json:"position"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FooterResource is a link rendered in the site footer.
type FooterResource struct {
	ID        string    `json:"id"`
	TitleIT   string    `json:"title_it"`
	TitleEN   string    `json:"title_en"`
	URL       string    `json:"url"`
	Icon      string    `json:"icon,omitempty"`
	Category  string    `json:"category"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FooterCategories are the accepted FooterResource.Category values.
var FooterCategories = []string{"links", "social", "legal", "support"}

func IsFooterCategory(category string) bool {
	for _, c := range FooterCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Table names double as change-feed topics and buffer entities.
const (
	TableMembers         = "members"
	TableBestGames       = "best_games"
	TableFAQs            = "faqs"
	TableFooterResources = "footer_resources"
	TableAdmins          = "admins"
)
