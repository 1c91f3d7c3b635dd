package collection

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acmlab/labsite/internal/domain"
	"github.com/acmlab/labsite/internal/pkg"
)

// Handler serves the admin route family for one collection.
type Handler struct {
	res Resource
}

func NewHandler(res Resource) *Handler {
	return &Handler{res: res}
}

func (h *Handler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)
	result, err := h.res.List(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.OK(c, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rec, err := h.res.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.OK(c, rec)
}

func (h *Handler) Create(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	rec, err := h.res.Create(c.Request.Context(), fields)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Mutation(c, http.StatusCreated, "created", gin.H{"data": rec})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	rec, err := h.res.Update(c.Request.Context(), id, fields)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Mutation(c, http.StatusOK, "updated", gin.H{"id": id, "data": rec})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.res.Delete(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Mutation(c, http.StatusOK, "deleted", gin.H{"id": id})
}

func (h *Handler) Reorder(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	key := h.res.Definition().IDListKey
	ids, err := extractIDList(fields, key)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if err := h.res.Reorder(c.Request.Context(), ids); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Mutation(c, http.StatusOK, "reordered", gin.H{"ids": ids})
}

// parseID treats a non-numeric or zero id segment as an address for a record
// that cannot exist, so it reports not found rather than a validation error.
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		pkg.Error(c, domain.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}

func bindFields(c *gin.Context) (map[string]any, bool) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		pkg.Error(c, domain.Validationf("invalid request body"))
		return nil, false
	}
	return fields, true
}

// extractIDList pulls the ordered id list out of a reorder payload. JSON
// numbers arrive as float64; anything fractional, negative or non-numeric is
// rejected.
func extractIDList(fields map[string]any, key string) ([]uint, error) {
	raw, exists := fields[key]
	if !exists {
		return nil, domain.Validationf("%s is required", key)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, domain.Validationf("%s must be a list", key)
	}

	ids := make([]uint, 0, len(list))
	for _, v := range list {
		n, ok := v.(float64)
		if !ok || n <= 0 || n != float64(uint(n)) {
			return nil, domain.Validationf("%s must contain positive integer ids", key)
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}
