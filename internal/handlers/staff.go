package handlers

import (
	"hospital-gin/internal/database"
	"hospital-gin/internal/models"

	"github.com/gin-gonic/gin"
)

type DoctorRequest struct {
	UserID       int    `json:"user_id" form:"user_id" binding:"omitempty,gt=0"`
	FirstName    string `json:"first_name" form:"first_name" binding:"required,max=50"`
	LastName     string `json:"last_name" form:"last_name" binding:"required,max=50"`
	Specialty    string `json:"specialty" form:"specialty" binding:"required,max=100"`
	DepartmentID int    `json:"department_id" form:"department_id" binding:"required,gt=0"`
	Phone        string `json:"phone" form:"phone" binding:"required,phone"`
	Email        string `json:"email" form:"email" binding:"required,email,max=100"`
}

type StaffRequest struct {
	UserID       int    `json:"user_id" form:"user_id" binding:"omitempty,gt=0"`
	FirstName    string `json:"first_name" form:"first_name" binding:"required,max=50"`
	LastName     string `json:"last_name" form:"last_name" binding:"required,max=50"`
	Position     string `json:"role" form:"role" binding:"required,max=100"`
	DepartmentID int    `json:"department_id" form:"department_id" binding:"required,gt=0"`
	Phone        string `json:"phone" form:"phone" binding:"required,phone"`
}

var doctorRecords = recordSpec[models.Doctor, DoctorRequest]{
	collection: database.Doctors,
	noun:       "Doctor",
	refs: func(req *DoctorRequest) []reference {
		return []reference{{field: "department_id", collection: database.Departments, id: req.DepartmentID}}
	},
	owner:     func(req *DoctorRequest) int { return req.UserID },
	ownerRole: models.RoleDoctor,
	create: func(req *DoctorRequest, id int, now string) models.Doctor {
		d := models.Doctor{ID: id, UserID: req.UserID, CreatedAt: now}
		req.applyTo(&d)
		return d
	},
	update: func(d models.Doctor, req *DoctorRequest, now string) models.Doctor {
		if req.UserID != 0 {
			d.UserID = req.UserID
		}
		req.applyTo(&d)
		d.UpdateTime = now
		return d
	},
}

func (req *DoctorRequest) applyTo(d *models.Doctor) {
	d.FirstName = req.FirstName
	d.LastName = req.LastName
	d.Specialty = req.Specialty
	d.DepartmentID = req.DepartmentID
	d.Phone = req.Phone
	d.Email = req.Email
}

var staffRecords = recordSpec[models.Staff, StaffRequest]{
	collection: database.StaffMembers,
	noun:       "Staff member",
	refs: func(req *StaffRequest) []reference {
		return []reference{{field: "department_id", collection: database.Departments, id: req.DepartmentID}}
	},
	owner:     func(req *StaffRequest) int { return req.UserID },
	ownerRole: models.RoleStaff,
	create: func(req *StaffRequest, id int, now string) models.Staff {
		s := models.Staff{ID: id, UserID: req.UserID, CreatedAt: now}
		req.applyTo(&s)
		return s
	},
	update: func(s models.Staff, req *StaffRequest, now string) models.Staff {
		if req.UserID != 0 {
			s.UserID = req.UserID
		}
		req.applyTo(&s)
		s.UpdateTime = now
		return s
	},
}

func (req *StaffRequest) applyTo(s *models.Staff) {
	s.FirstName = req.FirstName
	s.LastName = req.LastName
	s.Position = req.Position
	s.DepartmentID = req.DepartmentID
	s.Phone = req.Phone
}

func (h *Handler) GetAllDoctors(c *gin.Context) { listRecords(h, c, doctorRecords) }

func (h *Handler) GetDoctorByID(c *gin.Context) { showRecord(h, c, doctorRecords) }

func (h *Handler) InsertDoctor(c *gin.Context) { createRecord(h, c, doctorRecords) }

func (h *Handler) UpdateDoctorByID(c *gin.Context) { updateRecord(h, c, doctorRecords) }

func (h *Handler) GetAllStaff(c *gin.Context) { listRecords(h, c, staffRecords) }

func (h *Handler) GetStaffByID(c *gin.Context) { showRecord(h, c, staffRecords) }

func (h *Handler) InsertStaff(c *gin.Context) { createRecord(h, c, staffRecords) }

func (h *Handler) UpdateStaffByID(c *gin.Context) { updateRecord(h, c, staffRecords) }
