package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"hospital-gin/internal/apperr"
	"hospital-gin/internal/database"
	"hospital-gin/internal/models"
	"hospital-gin/internal/session"
	"hospital-gin/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// viewer is the signed-in user plus the role record linked to it.
type viewer struct {
	role      models.Role
	userID    int
	patientID int
	doctorID  int
}

// link is the part of a role record that ties it to a user.
type link struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`
}

func (l link) GetID() int { return l.ID }

func (h *Handler) viewerFor(c *gin.Context) (viewer, error) {
	s, ok := currentSession(c)
	if !ok {
		return viewer{}, apperr.Unauthenticated("Authentication required")
	}
	return h.resolveViewer(c.Request.Context(), s)
}

func (h *Handler) resolveViewer(ctx context.Context, s *session.Session) (viewer, error) {
	v := viewer{role: s.Role, userID: s.UserID}
	var collection string
	switch s.Role {
	case models.RolePatient:
		collection = database.Patients
	case models.RoleDoctor:
		collection = database.Doctors
	default:
		return v, nil
	}

	links, err := database.ReadAll[link](ctx, h.store, collection)
	if err != nil {
		return v, apperr.Persistence(err)
	}
	for _, l := range links {
		if l.UserID != s.UserID {
			continue
		}
		if s.Role == models.RolePatient {
			v.patientID = l.ID
		} else {
			v.doctorID = l.ID
		}
		break
	}
	return v, nil
}

// reference is a foreign key carried by a request. A zero id is not checked.
type reference struct {
	field      string
	collection string
	id         int
}

func refCollections(refs []reference) []string {
	var out []string
	for _, r := range refs {
		if r.id != 0 {
			out = append(out, r.collection)
		}
	}
	return out
}

// checkReferences fails with one message per dangling reference.
func checkReferences(tx database.Tx, refs []reference) error {
	loaded := make(map[string][]link)
	fields := make(map[string]string)
	var order []string
	for _, r := range refs {
		if r.id == 0 {
			continue
		}
		records, ok := loaded[r.collection]
		if !ok {
			var err error
			if records, err = database.LoadAll[link](tx, r.collection); err != nil {
				return err
			}
			loaded[r.collection] = records
		}
		if _, found := database.FindByID(records, r.id); !found {
			fields[r.field] = fmt.Sprintf("%s does not exist", r.field)
			order = append(order, r.field)
		}
	}
	if len(fields) > 0 {
		return apperr.ValidationFields(fields, order)
	}
	return nil
}

// recordSpec describes one CRUD collection. R is the bound request type.
type recordSpec[T database.Identified, R any] struct {
	collection string
	noun       string
	// visible limits which records a viewer may list, read or update.
	visible func(v viewer, rec T) bool
	refs    func(req *R) []reference
	// owner returns the user_id a role record links to; ownerRole is the
	// account role that user must hold. At most one record links each user.
	owner     func(req *R) int
	ownerRole models.Role
	// authorize runs extra per-request checks on create and update.
	authorize func(v viewer, req *R) error
	create    func(req *R, id int, now string) T
	update    func(existing T, req *R, now string) T
}

func (s recordSpec[T, R]) canSee(v viewer, rec T) bool {
	return s.visible == nil || s.visible(v, rec)
}

func (s recordSpec[T, R]) notFound() error {
	return apperr.NotFound(s.noun + " not found")
}

// locks lists the collections a write of req reads or changes.
func (s recordSpec[T, R]) locks(req *R, refs []reference) []string {
	names := append([]string{s.collection}, refCollections(refs)...)
	if s.owner != nil && s.owner(req) != 0 {
		names = append(names, database.Users)
	}
	return names
}

// checkOwner rejects a user_id that is missing, holds another role, or is
// already linked by a record other than self. self is 0 on create.
func (s recordSpec[T, R]) checkOwner(tx database.Tx, req *R, self int) error {
	if s.owner == nil {
		return nil
	}
	userID := s.owner(req)
	if userID == 0 {
		return nil
	}

	users, err := database.LoadAll[models.User](tx, database.Users)
	if err != nil {
		return err
	}
	u, ok := database.FindByID(users, userID)
	if !ok {
		return fieldError("user_id", "user_id does not exist")
	}
	if u.Role != s.ownerRole {
		return fieldError("user_id", fmt.Sprintf("user_id must belong to a %s account", s.ownerRole))
	}

	links, err := database.LoadAll[link](tx, s.collection)
	if err != nil {
		return err
	}
	for _, l := range links {
		if l.UserID == userID && l.ID != self {
			return fieldError("user_id", fmt.Sprintf("user_id is already linked to another %s", strings.ToLower(s.noun)))
		}
	}
	return nil
}

func fieldError(field, message string) error {
	return apperr.ValidationFields(map[string]string{field: message}, []string{field})
}

func parseID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, fieldError("id", "id must be a positive integer")
	}
	return id, nil
}

func listRecords[T database.Identified, R any](h *Handler, c *gin.Context, spec recordSpec[T, R]) {
	v, err := h.viewerFor(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	records, err := database.ReadAll[T](c.Request.Context(), h.store, spec.collection)
	if err != nil {
		h.fail(c, apperr.Persistence(err))
		return
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if spec.canSee(v, rec) {
			out = append(out, rec)
		}
	}
	respondData(c, out)
}

func showRecord[T database.Identified, R any](h *Handler, c *gin.Context, spec recordSpec[T, R]) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	v, err := h.viewerFor(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	records, err := database.ReadAll[T](c.Request.Context(), h.store, spec.collection)
	if err != nil {
		h.fail(c, apperr.Persistence(err))
		return
	}
	rec, ok := database.FindByID(records, id)
	if !ok || !spec.canSee(v, rec) {
		h.fail(c, spec.notFound())
		return
	}
	respondData(c, rec)
}

func createRecord[T database.Identified, R any](h *Handler, c *gin.Context, spec recordSpec[T, R]) {
	var req R
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, validation.FromBinding(err))
		return
	}
	v, err := h.viewerFor(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if spec.authorize != nil {
		if err := spec.authorize(v, &req); err != nil {
			h.fail(c, err)
			return
		}
	}

	var refs []reference
	if spec.refs != nil {
		refs = spec.refs(&req)
	}
	var created T
	err = h.store.Transact(c.Request.Context(), func(tx database.Tx) error {
		if err := checkReferences(tx, refs); err != nil {
			return err
		}
		if err := spec.checkOwner(tx, &req, 0); err != nil {
			return err
		}
		records, err := database.LoadAll[T](tx, spec.collection)
		if err != nil {
			return err
		}
		created = spec.create(&req, database.NextID(records), models.Now())
		return database.SaveAll(tx, spec.collection, append(records, created))
	}, spec.locks(&req, refs)...)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info("record created",
		zap.String("collection", spec.collection),
		zap.Int("id", created.GetID()),
		zap.Int("user_id", v.userID),
	)
	respond(c, gin.H{"message": spec.noun + " created successfully", "data": created})
}

func updateRecord[T database.Identified, R any](h *Handler, c *gin.Context, spec recordSpec[T, R]) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req R
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, validation.FromBinding(err))
		return
	}
	v, err := h.viewerFor(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if spec.authorize != nil {
		if err := spec.authorize(v, &req); err != nil {
			h.fail(c, err)
			return
		}
	}

	var refs []reference
	if spec.refs != nil {
		refs = spec.refs(&req)
	}
	var updated T
	err = h.store.Transact(c.Request.Context(), func(tx database.Tx) error {
		records, err := database.LoadAll[T](tx, spec.collection)
		if err != nil {
			return err
		}
		idx := -1
		for i, rec := range records {
			if rec.GetID() == id {
				idx = i
				break
			}
		}
		if idx < 0 || !spec.canSee(v, records[idx]) {
			return spec.notFound()
		}
		if err := checkReferences(tx, refs); err != nil {
			return err
		}
		if err := spec.checkOwner(tx, &req, id); err != nil {
			return err
		}
		updated = spec.update(records[idx], &req, models.Now())
		records[idx] = updated
		return database.SaveAll(tx, spec.collection, records)
	}, spec.locks(&req, refs)...)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info("record updated",
		zap.String("collection", spec.collection),
		zap.Int("id", id),
		zap.Int("user_id", v.userID),
	)
	respond(c, gin.H{"message": spec.noun + " updated successfully", "data": updated})
}
