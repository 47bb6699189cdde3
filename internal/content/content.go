// Package content holds the faculty's static page content. Rows carry
// catalog keys rather than text so every table renders in either language.
package content

// Stat is a headline figure on the home page.
type Stat struct {
	Icon     string
	Value    string
	LabelKey string
}

// Department is an academic department.
type Department struct {
	Slug     string
	Icon     string
	Accent   string
	Students int
	Faculty  int
}

// NameKey returns the catalog key of the department name.
func (d Department) NameKey() string { return "departments." + d.Slug + ".name" }

// DescriptionKey returns the catalog key of the department description.
func (d Department) DescriptionKey() string { return "departments." + d.Slug + ".description" }

// CourseKeys returns the catalog keys of the department's key courses.
func (d Department) CourseKeys() []string {
	return numbered("departments."+d.Slug+".courses.c", 4)
}

// Service is a student service. Main services list features; additional
// services do not.
type Service struct {
	Slug     string
	Icon     string
	Accent   string
	Features int
}

// TitleKey returns the catalog key of the service title.
func (s Service) TitleKey() string { return "services." + s.Slug + ".title" }

// DescriptionKey returns the catalog key of the service description.
func (s Service) DescriptionKey() string { return "services." + s.Slug + ".description" }

// FeatureKeys returns the catalog keys of the service features.
func (s Service) FeatureKeys() []string {
	return numbered("services."+s.Slug+".features.f", s.Features)
}

// Value is one of the faculty's stated values.
type Value struct {
	Slug string
	Icon string
}

// TitleKey returns the catalog key of the value title.
func (v Value) TitleKey() string { return "about.values." + v.Slug + ".title" }

// DescriptionKey returns the catalog key of the value description.
func (v Value) DescriptionKey() string { return "about.values." + v.Slug + ".description" }

func numbered(prefix string, n int) []string {
	keys := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		keys = append(keys, prefix+string(rune('0'+i)))
	}
	return keys
}

// Stats returns the home page figures in display order.
func Stats() []Stat {
	return []Stat{
		{Icon: "users", Value: "2,500+", LabelKey: "stats.students"},
		{Icon: "graduation-cap", Value: "85+", LabelKey: "stats.faculty"},
		{Icon: "book-open", Value: "12", LabelKey: "stats.programs"},
		{Icon: "file-text", Value: "450+", LabelKey: "stats.research"},
	}
}

// Departments returns the four departments in display order.
func Departments() []Department {
	return []Department{
		{Slug: "ai", Icon: "brain", Accent: "blue", Students: 650, Faculty: 22},
		{Slug: "ds", Icon: "database", Accent: "cyan", Students: 580, Faculty: 18},
		{Slug: "cs", Icon: "code", Accent: "indigo", Students: 720, Faculty: 25},
		{Slug: "robotics", Icon: "cog", Accent: "purple", Students: 420, Faculty: 15},
	}
}

// Services returns the main student services in display order.
func Services() []Service {
	return []Service{
		{Slug: "documents", Icon: "file-text", Accent: "blue", Features: 4},
		{Slug: "academic", Icon: "book-open", Accent: "cyan", Features: 4},
		{Slug: "career", Icon: "briefcase", Accent: "indigo", Features: 4},
		{Slug: "chatbot", Icon: "message-square", Accent: "purple", Features: 4},
	}
}

// AdditionalServices returns the secondary services listed below the main ones.
func AdditionalServices() []Service {
	return []Service{
		{Slug: "scholarships", Icon: "graduation-cap"},
		{Slug: "events", Icon: "calendar"},
		{Slug: "payments", Icon: "credit-card"},
		{Slug: "support", Icon: "help-circle"},
	}
}

// Values returns the faculty values in display order.
func Values() []Value {
	return []Value{
		{Slug: "excellence", Icon: "award"},
		{Slug: "collaboration", Icon: "users"},
		{Slug: "innovation", Icon: "lightbulb"},
		{Slug: "impact", Icon: "globe"},
	}
}
