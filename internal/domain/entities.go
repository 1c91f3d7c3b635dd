package domain

// Status values used by collections with a visibility gate.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// TeamMember is a lab member shown on the team page, grouped by grade on the
// front end.
type TeamMember struct {
	OrderedModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Position    string `gorm:"size:100" json:"position"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:500" json:"image_url"`
	QQ          string `gorm:"size:50" json:"qq"`
	WeChat      string `gorm:"size:50" json:"wechat"`
	Email       string `gorm:"size:255" json:"email"`
	Grade       string `gorm:"size:50" json:"grade"`
}

// Advisor is a faculty advisor profile.
type Advisor struct {
	OrderedModel
	Name          string `gorm:"size:100;not null" json:"name"`
	Position      string `gorm:"size:100;not null" json:"position"`
	Description   string `gorm:"type:text" json:"description"`
	ImageURL      string `gorm:"size:500" json:"image_url"`
	Email         string `gorm:"size:255" json:"email"`
	GoogleScholar string `gorm:"size:500" json:"google_scholar"`
	GitHub        string `gorm:"size:500" json:"github"`
	BorderColor   string `gorm:"size:50" json:"border_color"`
	Status        string `gorm:"size:20;index" json:"status"`
}

// Paper is a publication record.
type Paper struct {
	OrderedModel
	Title         string     `gorm:"size:500;not null" json:"title"`
	Authors       StringList `gorm:"type:text" json:"authors"`
	Journal       string     `gorm:"size:255" json:"journal"`
	Year          int        `json:"year"`
	Abstract      string     `gorm:"type:text" json:"abstract"`
	Status        string     `gorm:"size:20;index" json:"status"`
	PDFURL        string     `gorm:"size:500" json:"pdf_url"`
	CitationCount int        `json:"citation_count"`
	DOI           string     `gorm:"size:255" json:"doi"`
	CodeURL       string     `gorm:"size:500" json:"code_url"`
	VideoURL      string     `gorm:"size:500" json:"video_url"`
	DemoURL       string     `gorm:"size:500" json:"demo_url"`
	CategoryIDs   IntList    `gorm:"type:text" json:"category_ids"`
}

// ResearchArea is a research direction with its participating members.
type ResearchArea struct {
	OrderedModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Category    string     `gorm:"size:100" json:"category"`
	Description string     `gorm:"type:text" json:"description"`
	Members     StringList `gorm:"type:text" json:"members"`
}

// CarouselItem is a slide on the innovation page carousel.
type CarouselItem struct {
	OrderedModel
	Title          string  `gorm:"size:255;not null" json:"title"`
	Description    string  `gorm:"type:text" json:"description"`
	ImageURL       string  `gorm:"size:500" json:"image_url"`
	LinkURL        string  `gorm:"size:500" json:"link_url"`
	TextPosition   string  `gorm:"size:50" json:"text_position"`
	OverlayOpacity float64 `json:"overlay_opacity"`
	Status         string  `gorm:"size:20;index" json:"status"`
}

// Achievement is an award or milestone entry.
type Achievement struct {
	OrderedModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Type        string `gorm:"size:100" json:"type"`
	Description string `gorm:"type:text" json:"description"`
	Date        string `gorm:"size:50" json:"date"`
	Icon        string `gorm:"size:100" json:"icon"`
	Status      string `gorm:"size:20;index" json:"status"`
	ExtraData   string `gorm:"type:text" json:"extra_data"`
}

// InnovationStat is a headline number shown on the innovation page.
type InnovationStat struct {
	OrderedModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Value       string `gorm:"size:100" json:"value"`
	Icon        string `gorm:"size:100" json:"icon"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;index" json:"status"`
}

// InnovationProject is a showcased innovation outcome on the innovation page.
// Tags is a comma-separated string, matching the form the admin UI submits.
type InnovationProject struct {
	OrderedModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:500" json:"image_url"`
	Category    string `gorm:"size:100" json:"category"`
	Tags        string `gorm:"size:500" json:"tags"`
	DetailURL   string `gorm:"size:500" json:"detail_url"`
	Status      string `gorm:"size:20;index" json:"status"`
}

// TrainingProject is a student innovation training project.
type TrainingProject struct {
	OrderedModel
	Title         string `gorm:"size:255;not null" json:"title"`
	Description   string `gorm:"type:text" json:"description"`
	Category      string `gorm:"size:100" json:"category"`
	Progress      int    `json:"progress"`
	StartDate     string `gorm:"size:50" json:"start_date"`
	EndDate       string `gorm:"size:50" json:"end_date"`
	Budget        string `gorm:"size:100" json:"budget"`
	Leader        string `gorm:"size:100" json:"leader"`
	MembersCount  int    `json:"members_count"`
	ContactEmail  string `gorm:"size:255" json:"contact_email"`
	ContactPhone  string `gorm:"size:50" json:"contact_phone"`
	ContactWeChat string `gorm:"size:50" json:"contact_wechat"`
	ImageURL      string `gorm:"size:500" json:"image_url"`
	Status        string `gorm:"size:20;index" json:"status"`
}

// IntellectualProperty is a patent or software copyright record.
type IntellectualProperty struct {
	OrderedModel
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Type            string     `gorm:"size:100" json:"type"`
	Category        string     `gorm:"size:100" json:"category"`
	ApplicationDate string     `gorm:"size:50" json:"application_date"`
	GrantDate       string     `gorm:"size:50" json:"grant_date"`
	PatentNumber    string     `gorm:"size:100" json:"patent_number"`
	Inventors       StringList `gorm:"type:text" json:"inventors"`
	ImageURL        string     `gorm:"size:500" json:"image_url"`
	Status          string     `gorm:"size:20;index" json:"status"`
}

// EnterpriseCooperation is an industry collaboration entry.
type EnterpriseCooperation struct {
	OrderedModel
	Title          string `gorm:"size:255;not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	EnterpriseName string `gorm:"size:255" json:"enterprise_name"`
	Category       string `gorm:"size:100" json:"category"`
	StartDate      string `gorm:"size:50" json:"start_date"`
	EndDate        string `gorm:"size:50" json:"end_date"`
	Budget         string `gorm:"size:100" json:"budget"`
	Leader         string `gorm:"size:100" json:"leader"`
	Achievement    string `gorm:"type:text" json:"achievement"`
	EnterpriseLogo string `gorm:"size:500" json:"enterprise_logo"`
	ImageURL       string `gorm:"size:500" json:"image_url"`
	Status         string `gorm:"size:20;index" json:"status"`
}

// Announcement is a news or notification post.
type Announcement struct {
	OrderedModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	Content     string     `gorm:"type:text" json:"content"`
	Category    string     `gorm:"size:100" json:"category"`
	Author      string     `gorm:"size:100" json:"author"`
	PublishDate string     `gorm:"size:50" json:"publish_date"`
	ReadingTime string     `gorm:"size:50" json:"reading_time"`
	Tags        StringList `gorm:"type:text" json:"tags"`
	Status      string     `gorm:"size:20;index" json:"status"`
	ViewCount   int        `json:"view_count"`
}
