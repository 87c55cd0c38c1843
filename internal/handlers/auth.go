package handlers

import (
	"hospital-gin/internal/apperr"
	"hospital-gin/internal/auth"
	"hospital-gin/internal/models"
	"hospital-gin/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// --- Structs for Request Binding ---

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
	Role     string `json:"role" form:"role" binding:"required,account_role"`
}

type RegisterRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,max=50"`
	Email     string `json:"email" form:"email" binding:"required,email,max=100"`
	Password  string `json:"password" form:"password" binding:"required,min=6,max=72"`
	Phone     string `json:"phone" form:"phone" binding:"required,phone"`
	Role      string `json:"role" form:"role" binding:"required,oneof=patient doctor staff"`

	DateOfBirth string `json:"date_of_birth" form:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender      string `json:"gender" form:"gender" binding:"omitempty,gender"`
	Address     string `json:"address" form:"address" binding:"omitempty,max=255"`

	Specialty         string `json:"specialty" form:"specialty" binding:"omitempty,max=100"`
	DepartmentID      int    `json:"department_id" form:"department_id" binding:"omitempty,gt=0"`
	StaffRole         string `json:"staff_role" form:"staff_role" binding:"omitempty,max=100"`
	StaffDepartmentID int    `json:"staff_department_id" form:"staff_department_id" binding:"omitempty,gt=0"`
}

// userView is a user as clients see it.
type userView struct {
	ID        int         `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Role      models.Role `json:"role"`
	CreatedAt string      `json:"created_at"`
}

func viewUser(u models.User) userView {
	return userView{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Phone: u.Phone, Role: u.Role, CreatedAt: u.CreatedAt}
}

// --- Handler Functions ---

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, validation.FromBinding(err))
		return
	}

	ident, err := h.auth.Authenticate(c.Request.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	// A fresh id on every login; any previous session is dropped.
	if old, err := c.Cookie(h.cookie.Name); err == nil && old != "" {
		if err := h.sessions.Destroy(c.Request.Context(), old); err != nil {
			h.logger.Warn("failed to drop previous session", zap.Error(err))
		}
	}
	s, err := h.sessions.Create(c.Request.Context(), ident)
	if err != nil {
		h.fail(c, apperr.Persistence(err))
		return
	}
	h.setCookie(c, s.ID)

	h.logger.Info("user logged in", zap.Int("user_id", ident.UserID), zap.String("role", string(ident.Role)))
	respond(c, gin.H{"message": "Login successful", "data": ident})
}

func (h *Handler) Logout(c *gin.Context) {
	if id, err := c.Cookie(h.cookie.Name); err == nil && id != "" {
		if err := h.sessions.Destroy(c.Request.Context(), id); err != nil {
			h.fail(c, apperr.Persistence(err))
			return
		}
	}
	h.clearCookie(c)
	respond(c, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, validation.FromBinding(err))
		return
	}

	reg := auth.Registration{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		Role:         models.Role(req.Role),
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		Address:      req.Address,
		Specialty:    req.Specialty,
		DepartmentID: req.DepartmentID,
	}
	if reg.Role == models.RoleStaff {
		reg.Position = req.StaffRole
		if req.StaffDepartmentID != 0 {
			reg.DepartmentID = req.StaffDepartmentID
		}
	}

	user, err := h.auth.Register(c.Request.Context(), reg)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, gin.H{"message": "Registration successful! Please login.", "data": viewUser(user)})
}

// Session returns the signed-in identity and its linked record ids.
func (h *Handler) Session(c *gin.Context) {
	s, _ := currentSession(c)
	v, err := h.viewerFor(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	data := gin.H{
		"user_id":    s.UserID,
		"email":      s.Email,
		"role":       s.Role,
		"first_name": s.FirstName,
		"last_name":  s.LastName,
		"pages":      h.gate.AllowedPages(s.Role),
	}
	if v.patientID != 0 {
		data["patient_id"] = v.patientID
	}
	if v.doctorID != 0 {
		data["doctor_id"] = v.doctorID
	}
	respondData(c, data)
}

func (h *Handler) Pages(c *gin.Context) {
	s, _ := currentSession(c)
	respondData(c, h.gate.AllowedPages(s.Role))
}

// Page answers whether the session may open one page.
func (h *Handler) Page(c *gin.Context) {
	s, _ := currentSession(c)
	page := c.Param("page")
	if err := h.gate.RequirePage(s, page); err != nil {
		h.fail(c, err)
		return
	}
	respondData(c, gin.H{"page": page, "allowed": true})
}
