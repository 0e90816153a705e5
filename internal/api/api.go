package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/celerix-dev/celerix-users/internal/store"
	"github.com/celerix-dev/celerix-users/internal/validate"
	"github.com/celerix-dev/celerix-users/pkg/schema"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

const (
	searchErr      = "Please provide a valid email to search."
	noResultsMsg   = "No users found with the provided email."
	titleList      = "User list"
	titleCreate    = "Create user"
	titleUpdate    = "Update user"
	titleSearch    = "Search user"
	searchQueryKey = "search"
)

type Handler struct {
	Store     store.UserStore
	Validator *validate.Validator
	Log       *zap.Logger
}

// userForm is the body of the create and update forms.
type userForm struct {
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
	Email     string `form:"email"`
	Age       string `form:"age"`
	Bio       string `form:"bio"`
}

// fields converts the form into store fields. A blank or non-numeric age is
// treated as no age.
func (f userForm) fields() schema.UserFields {
	out := schema.UserFields{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Bio:       f.Bio,
	}
	if age, err := strconv.Atoi(strings.TrimSpace(f.Age)); err == nil {
		out.Age = &age
	}
	return out
}

func (h *Handler) ListUsers(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"title": titleList,
		"users": h.Store.List(),
	})
}

func (h *Handler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "createUser", gin.H{
		"title": titleCreate,
		"form":  userForm{},
	})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var form userForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	fields, errs := h.Validator.User(form.fields())
	if len(errs) > 0 {
		h.logger(c).Debug("create rejected", zap.Int("errors", len(errs)))
		c.HTML(http.StatusBadRequest, "createUser", gin.H{
			"title":  titleCreate,
			"form":   form,
			"errors": errs,
		})
		return
	}

	id := h.Store.Add(fields)
	h.logger(c).Info("user created", zap.Int("user_id", id))
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) UpdateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "updateUser", gin.H{
		"title": titleUpdate,
		"id":    c.Param("id"),
		"user":  h.lookup(c),
	})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var form userForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	fields, errs := h.Validator.User(form.fields())
	if len(errs) > 0 {
		h.logger(c).Debug("update rejected", zap.String("id", c.Param("id")), zap.Int("errors", len(errs)))
		c.HTML(http.StatusBadRequest, "updateUser", gin.H{
			"title":  titleUpdate,
			"id":     c.Param("id"),
			"user":   h.lookup(c),
			"errors": errs,
		})
		return
	}

	if id, ok := pathID(c); ok {
		h.Store.Update(id, fields)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if id, ok := pathID(c); ok {
		h.Store.Delete(id)
	}
	c.Redirect(http.StatusFound, "/")
}

// Search renders the empty search form, or runs the search when a query is
// present.
func (h *Handler) Search(c *gin.Context) {
	if _, ok := c.GetQuery(searchQueryKey); !ok {
		h.SearchForm(c)
		return
	}
	h.SearchUsers(c)
}

func (h *Handler) SearchForm(c *gin.Context) {
	c.HTML(http.StatusOK, "searchUser", gin.H{
		"title": titleSearch,
		"query": "",
	})
}

func (h *Handler) SearchUsers(c *gin.Context) {
	query := c.Query(searchQueryKey)
	if strings.TrimSpace(query) == "" {
		h.logger(c).Info("search rejected", zap.String("reason", "blank query"))
		c.String(http.StatusBadRequest, searchErr)
		return
	}

	results := h.Store.SearchByEmail(query)
	message := ""
	if len(results) == 0 {
		message = noResultsMsg
	}
	c.HTML(http.StatusOK, "searchUser", gin.H{
		"title":   titleSearch,
		"query":   query,
		"results": results,
		"message": message,
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// lookup returns the user named by the :id path parameter, or nil when the
// id is malformed or not live.
func (h *Handler) lookup(c *gin.Context) *schema.UserRecord {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	u, err := h.Store.Get(id)
	if err != nil {
		return nil
	}
	return &u
}

func (h *Handler) logger(c *gin.Context) *zap.Logger {
	return h.Log.With(zap.String("request_id", c.GetString(requestIDKey)))
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
