package frontend

import "context"

// FixtureStore serves static payloads shaped like live results, for
// deployments without a reachable datastore. The fixture set mirrors the
// collection catalog: every route answers, so the front end renders without
// a database behind it.
type FixtureStore struct {
	data map[string][]map[string]any
}

func NewFixtureStore() *FixtureStore {
	return &FixtureStore{data: fixtureData}
}

func (s *FixtureStore) Collection(_ context.Context, name string) (any, error) {
	items, ok := s.data[name]
	if !ok {
		return nil, errUnknownCollection(name)
	}
	return items, nil
}

var fixtureData = map[string][]map[string]any{
	"team-members": {
		{"id": 1, "sort_order": 1, "name": "Wei Chen", "position": "PhD Student", "grade": "2023", "email": "wchen@example.edu"},
		{"id": 2, "sort_order": 2, "name": "Mei Lin", "position": "Master Student", "grade": "2024", "email": "mlin@example.edu"},
	},
	"advisors": {
		{"id": 1, "sort_order": 1, "name": "Prof. Jun Wang", "position": "Professor", "status": "active", "email": "jwang@example.edu"},
	},
	"papers": {
		{"id": 1, "sort_order": 1, "title": "Learning to Rank with Sparse Labels", "authors": []string{"Wei Chen", "Jun Wang"}, "journal": "Example Transactions", "year": 2025, "status": "published"},
	},
	"research-areas": {
		{"id": 1, "sort_order": 1, "title": "Information Retrieval", "category": "core", "members": []string{"Wei Chen"}},
		{"id": 2, "sort_order": 2, "title": "Recommender Systems", "category": "core", "members": []string{"Mei Lin"}},
	},
	"carousel": {
		{"id": 1, "sort_order": 1, "title": "Welcome to the Lab", "status": "active", "text_position": "center", "overlay_opacity": 0.4},
	},
	"achievements": {
		{"id": 1, "sort_order": 1, "title": "Best Paper Award", "type": "award", "date": "2025-06-01", "status": "active"},
	},
	"stats": {
		{"id": 1, "sort_order": 1, "name": "Publications", "value": "40+", "status": "active"},
		{"id": 2, "sort_order": 2, "name": "Members", "value": "18", "status": "active"},
	},
	"innovation-projects": {
		{"id": 1, "sort_order": 1, "title": "Intelligent Image Recognition System", "category": "national", "tags": "AI,vision", "detail_url": "/innovation/project/1", "status": "active"},
		{"id": 2, "sort_order": 2, "title": "Natural Language Processing Platform", "category": "provincial", "tags": "NLP,AI", "detail_url": "/innovation/project/2", "status": "active"},
	},
	"training-projects": {
		{"id": 1, "sort_order": 1, "title": "Undergraduate Innovation Program", "category": "national", "progress": 60, "status": "active"},
	},
	"intellectual-properties": {
		{"id": 1, "sort_order": 1, "title": "Ranking Method and Apparatus", "type": "patent", "status": "active"},
	},
	"enterprise-cooperations": {
		{"id": 1, "sort_order": 1, "title": "Search Quality Project", "enterprise_name": "Example Corp", "status": "active"},
	},
	"announcements": {
		{"id": 1, "sort_order": 1, "title": "Lab Meeting Schedule", "category": "notice", "status": "published", "publish_date": "2025-09-01"},
	},
}
