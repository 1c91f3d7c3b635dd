package frontend

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acmlab/labsite/internal/domain"
	"github.com/acmlab/labsite/internal/pkg"
)

const homeActivityLimit = 3

// activityFields is the projection served on the home page activity strip.
var activityFields = []string{
	"id", "title", "excerpt", "category", "author",
	"publish_date", "reading_time", "tags",
}

// activities serves the newest published announcements for the home page,
// already in display order, capped at homeActivityLimit.
func (m *Module) activities(c *gin.Context) {
	items, err := collectionRecords(c.Request.Context(), m.source, "announcements")
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if len(items) > homeActivityLimit {
		items = items[:homeActivityLimit]
	}

	activities := make([]map[string]any, 0, len(items))
	for _, item := range items {
		activity := make(map[string]any, len(activityFields)+1)
		for _, f := range activityFields {
			activity[f] = item[f]
		}
		raw, _ := item["publish_date"].(string)
		activity["formatted_date"] = formatActivityDate(raw)
		activities = append(activities, activity)
	}
	pkg.OK(c, activities)
}

// researchCategories serves the distinct research area categories with their
// record counts, largest first.
func (m *Module) researchCategories(c *gin.Context) {
	counts, _, err := m.researchCategoryCounts(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	type categoryCount struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	categories := make([]categoryCount, 0, len(counts))
	for name, count := range counts {
		categories = append(categories, categoryCount{Name: name, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Name < categories[j].Name
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

// researchStats serves the research area total alongside the per-category
// counts.
func (m *Module) researchStats(c *gin.Context) {
	counts, total, err := m.researchCategoryCounts(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"total":      total,
		"categories": counts,
	}})
}

func (m *Module) researchCategoryCounts(ctx context.Context) (map[string]int, int, error) {
	items, err := collectionRecords(ctx, m.source, "research-areas")
	if err != nil {
		return nil, 0, err
	}
	counts := make(map[string]int)
	for _, item := range items {
		category, _ := item["category"].(string)
		counts[category]++
	}
	return counts, len(items), nil
}

// collectionRecords normalizes a collection payload to field maps, so the
// aggregates work over live structs and fixture data alike.
func collectionRecords(ctx context.Context, source DataSource, name string) ([]map[string]any, error) {
	payload, err := source.Collection(ctx, name)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "internal error", err)
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "internal error", err)
	}
	return items, nil
}

// formatActivityDate renders a stored publish date as YYYY.MM.DD; values that
// do not parse pass through unchanged.
func formatActivityDate(raw string) string {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006.01.02")
		}
	}
	return raw
}
