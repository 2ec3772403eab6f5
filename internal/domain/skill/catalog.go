package skill

// Category groups well-known skill names shown by the project form.
type Category struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Skills []string `json:"skills"`
}

// ProjectType is a selectable project-type tag.
type ProjectType struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

const OtherKey = "other"

var categories = []Category{
	{
		Key:   "programming_language",
		Label: "Programming Language",
		Skills: []string{
			"JavaScript", "TypeScript", "Python", "Java", "PHP", "Ruby", "Go", "C#", "Swift",
			"Kotlin", "Rust", "C++", "C", "Scala", "Dart", "SQL", "HTML/CSS", "ShellScript", "R",
		},
	},
	{
		Key:   "framework",
		Label: "Framework",
		Skills: []string{
			"React", "Next.js", "Vue.js", "Nuxt.js", "Angular", "Svelte", "Node.js", "Express",
			"NestJS", "Django", "FastAPI", "Flask", "Spring Boot", "Laravel", "Ruby on Rails",
			"ASP.NET", "Flutter", "React Native",
		},
	},
	{
		Key:   "database",
		Label: "Database",
		Skills: []string{
			"PostgreSQL", "MySQL", "MongoDB", "Redis", "DynamoDB", "Firestore", "Oracle",
			"SQL Server", "Elasticsearch", "Supabase",
		},
	},
	{
		Key:    "cloud",
		Label:  "Cloud",
		Skills: []string{"AWS", "Google Cloud", "Azure", "Firebase", "Vercel", "Netlify", "Heroku", "DigitalOcean"},
	},
	{
		Key:   "tooling",
		Label: "Other Technology",
		Skills: []string{
			"Docker", "Kubernetes", "Terraform", "GitHub Actions", "Jenkins", "GraphQL",
			"REST API", "Webpack", "Vite", "Git",
		},
	},
}

var projectTypes = []ProjectType{
	{Key: "requirements_definition", Label: "Requirements Definition"},
	{Key: "system_design", Label: "System Design"},
	{Key: "frontend_development", Label: "Frontend Development"},
	{Key: "backend_development", Label: "Backend Development"},
	{Key: "web_app", Label: "Web Application Development"},
	{Key: "mobile_app", Label: "Mobile App Development"},
	{Key: "api_development", Label: "API Development"},
	{Key: "infrastructure", Label: "Infrastructure Build & Operations"},
	{Key: "system_test", Label: "System Testing"},
	{Key: "data_analysis", Label: "Data Analysis"},
	{Key: "poc", Label: "Proof of Concept"},
	{Key: "consulting", Label: "Technical Consulting"},
	{Key: "maintenance", Label: "Maintenance & Operations"},
	{Key: "migration", Label: "System Migration"},
	{Key: OtherKey, Label: "Other"},
}

func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Skills = append([]string(nil), c.Skills...)
		out[i] = c
	}
	return out
}

func ProjectTypes() []ProjectType {
	return append([]ProjectType(nil), projectTypes...)
}

// ProjectTypeLabel returns the display label for key, or key itself when the
// tag is not part of the catalog.
func ProjectTypeLabel(key string) string {
	for _, pt := range projectTypes {
		if pt.Key == key {
			return pt.Label
		}
	}
	return key
}

// CategoryOf returns the catalog category key for a skill name, or OtherKey.
func CategoryOf(name string) string {
	for _, c := range categories {
		for _, s := range c.Skills {
			if s == name {
				return c.Key
			}
		}
	}
	return OtherKey
}
