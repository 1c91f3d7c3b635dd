package collection

import (
	"gorm.io/gorm"

	"github.com/acmlab/labsite/internal/domain"
	"github.com/acmlab/labsite/internal/pkg"
)

// Definitions is the catalog of every ordered collection served by the API.
var Definitions = []Definition{
	{
		Name:         "team-members",
		IDListKey:    "member_ids",
		Topics:       []string{"team", "home"},
		Required:     []string{"name"},
		FilterFields: []string{"grade", "position"},
	},
	{
		Name:            "advisors",
		IDListKey:       "advisor_ids",
		Topics:          []string{"team"},
		Required:        []string{"name", "position"},
		StatusField:     "status",
		DefaultStatus:   domain.StatusActive,
		VisibleStatuses: []string{domain.StatusActive},
		FilterFields:    []string{"status"},
	},
	{
		Name:            "papers",
		IDListKey:       "paper_ids",
		Topics:          []string{"paper", "home"},
		Required:        []string{"title"},
		StatusField:     "status",
		DefaultStatus:   domain.StatusPublished,
		VisibleStatuses: []string{domain.StatusPublished},
		FilterFields:    []string{"status", "year", "journal"},
	},
	{
		Name:         "research-areas",
		IDListKey:    "area_ids",
		Topics:       []string{"research"},
		Required:     []string{"title"},
		FilterFields: []string{"category"},
	},
	{
		Name:            "carousel",
		IDListKey:       "carousel_ids",
		Topics:          []string{"innovation"},
		Required:        []string{"title"},
		StatusField:     "status",
		DefaultStatus:   domain.StatusActive,
		VisibleStatuses: []string{domain.StatusActive},
		FilterFields:    []string{"status"},
	},
	{
		Name:            "achievements",
		IDListKey:       "achievement_ids",
		Topics:          []string{"innovation"},
		Required:        []string{"title"},
		StatusField:     "status",
		DefaultStatus:   domain.StatusActive,
		VisibleStatuses: []string{domain.StatusActive},
		FilterFields:    []string{"status", "type"},
	},
	{
		Name:            "stats",
		IDListKey:       "stat_ids",
		Topics:          []string{"innovation"},
		Required:        []string{"name"},
		StatusField:     "status",
		DefaultStatus:   domain.StatusActive,
		VisibleStatuses: []string{domain.StatusActive},
		FilterFields:    []string{"status"},
	},
	{
		Name:            "innovation-projects",
		IDListKey:       "project_ids",
		Topics:          []string{"innovation"},
		Required:        []string{"title"},
		StatusField:     "status",
		DefaultStatus:   domain.StatusActive,
		VisibleStatuses: []string{domain.StatusActive},
		FilterFields:    []string{"status", "category"},
	},
	{
		Name:            "training-projects",
		IDListKey:       "project_ids",
		Topics:          []string{"innovation"},
		Required:        []string{"title"},
		StatusField:     "status",
		DefaultStatus:   domain.StatusActive,
		VisibleStatuses: []string{domain.StatusActive},
		FilterFields:    []string{"status", "category"},
	},
	{
		Name:            "intellectual-properties",
		IDListKey:       "property_ids",
		Topics:          []string{"innovation"},
		Required:        []string{"title"},
		StatusField:     "status",
		DefaultStatus:   domain.StatusActive,
		VisibleStatuses: []string{domain.StatusActive},
		FilterFields:    []string{"status", "type", "category"},
	},
	{
		Name:            "enterprise-cooperations",
		IDListKey:       "cooperation_ids",
		Topics:          []string{"innovation"},
		Required:        []string{"title"},
		StatusField:     "status",
		DefaultStatus:   domain.StatusActive,
		VisibleStatuses: []string{domain.StatusActive},
		FilterFields:    []string{"status", "category"},
	},
	{
		Name:            "announcements",
		IDListKey:       "announcement_ids",
		Topics:          []string{"home", "dynamic"},
		Required:        []string{"title"},
		StatusField:     "status",
		DefaultStatus:   domain.StatusPublished,
		VisibleStatuses: []string{domain.StatusPublished},
		FilterFields:    []string{"status", "category"},
	},
}

// BuildResources instantiates every collection in Definitions over one
// database handle.
func BuildResources(db *gorm.DB, cache *pkg.Cache, notifier domain.Notifier) []Resource {
	byName := make(map[string]Definition, len(Definitions))
	for _, def := range Definitions {
		byName[def.Name] = def
	}

	return []Resource{
		NewResource[domain.TeamMember](byName["team-members"], db, cache, notifier),
		NewResource[domain.Advisor](byName["advisors"], db, cache, notifier),
		NewResource[domain.Paper](byName["papers"], db, cache, notifier),
		NewResource[domain.ResearchArea](byName["research-areas"], db, cache, notifier),
		NewResource[domain.CarouselItem](byName["carousel"], db, cache, notifier),
		NewResource[domain.Achievement](byName["achievements"], db, cache, notifier),
		NewResource[domain.InnovationStat](byName["stats"], db, cache, notifier),
		NewResource[domain.InnovationProject](byName["innovation-projects"], db, cache, notifier),
		NewResource[domain.TrainingProject](byName["training-projects"], db, cache, notifier),
		NewResource[domain.IntellectualProperty](byName["intellectual-properties"], db, cache, notifier),
		NewResource[domain.EnterpriseCooperation](byName["enterprise-cooperations"], db, cache, notifier),
		NewResource[domain.Announcement](byName["announcements"], db, cache, notifier),
	}
}
