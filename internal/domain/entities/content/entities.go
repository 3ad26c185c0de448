// Package content defines the editable content entities of the portfolio site.
package content

import "time"

// Strength is a single {icon, text} entry in the about section.
type Strength struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// Stat is a single {value, label, color} entry in the about section.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// AboutInfo is the singleton profile/about record. The identifier is an
// explicit pointer: nil means the record has never been persisted. A stored
// id of 0 is a valid existing id and must never be treated as absent.
type AboutInfo struct {
	ID            *int64     `json:"id,omitempty"`
	ProfileImage  string     `json:"profileImage"`
	Name          string     `json:"name"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Location      string     `json:"location"`
	Certification string     `json:"certification"`
	Availability  string     `json:"availability"`
	Summary1      string     `json:"summary1"`
	Summary2      string     `json:"summary2"`
	Summary3      string     `json:"summary3"`
	Strengths     []Strength `json:"strengths"`
	Stats         []Stat     `json:"stats"`
	UpdatedAt     time.Time  `json:"updatedAt,omitempty"`
}

// Clone returns a deep copy safe to mutate independently.
func (a AboutInfo) Clone() AboutInfo {
	out := a
	out.ID = cloneID(a.ID)
	out.Strengths = append([]Strength(nil), a.Strengths...)
	out.Stats = append([]Stat(nil), a.Stats...)
	return out
}

// ContactInfo is the singleton contact record.
type ContactInfo struct {
	ID        *int64    `json:"id,omitempty"`
	Email     string    `json:"email"`
	Location  string    `json:"location"`
	Github    string    `json:"github"`
	Linkedin  string    `json:"linkedin"`
	Instagram string    `json:"instagram"`
	Twitter   string    `json:"twitter"`
	Website   string    `json:"website"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Clone returns a deep copy safe to mutate independently.
func (c ContactInfo) Clone() ContactInfo {
	out := c
	out.ID = cloneID(c.ID)
	return out
}

// Project is one portfolio project entry.
type Project struct {
	ID           *int64    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Image        string    `json:"image"`
	Technologies []string  `json:"technologies"`
	GithubURL    string    `json:"githubUrl"`
	LiveURL      string    `json:"liveUrl"`
	Featured     bool      `json:"featured"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// Clone returns a deep copy safe to mutate independently.
func (p Project) Clone() Project {
	out := p
	out.ID = cloneID(p.ID)
	out.Technologies = append([]string(nil), p.Technologies...)
	return out
}

// Certificate is one certification entry. Date is a human-entered display
// string ("Jan 2024", "2024-01") that is also used for sorting.
type Certificate struct {
	ID              *int64    `json:"id,omitempty"`
	Title           string    `json:"title"`
	Issuer          string    `json:"issuer"`
	Date            string    `json:"date"`
	Description     string    `json:"description"`
	Image           string    `json:"image"`
	VerificationURL string    `json:"verificationUrl"`
	Skills          []string  `json:"skills"`
	DisplayOrder    int       `json:"displayOrder"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// Clone returns a deep copy safe to mutate independently.
func (c Certificate) Clone() Certificate {
	out := c
	out.ID = cloneID(c.ID)
	out.Skills = append([]string(nil), c.Skills...)
	return out
}

// TechStackItem is one technology entry. Icon holds an inline SVG or an
// image reference.
type TechStackItem struct {
	ID           *int64    `json:"id,omitempty"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Icon         string    `json:"icon"`
	Color        string    `json:"color"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// Clone returns a deep copy safe to mutate independently.
func (t TechStackItem) Clone() TechStackItem {
	out := t
	out.ID = cloneID(t.ID)
	return out
}

// ContactMessage is a visitor-submitted message.
type ContactMessage struct {
	ID        *int64    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Operator is the authenticated admin identity.
type Operator struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// IDValue dereferences an optional identifier, returning ok=false when the
// record was never persisted.
func IDValue(id *int64) (int64, bool) {
	if id == nil {
		return 0, false
	}
	return *id, true
}
