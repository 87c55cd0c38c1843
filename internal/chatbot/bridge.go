// Package chatbot answers patient symptom questions through an external
// language model and suggests departments from its reply.
package chatbot

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"hospital-gin/internal/apperr"
	"hospital-gin/internal/database"
	"hospital-gin/internal/models"
	"hospital-gin/internal/session"

	"go.uber.org/zap"
)

// MaxMessageLength bounds a patient message, in characters.
const MaxMessageLength = 2000

// Reply is what the patient gets back.
type Reply struct {
	Response    string   `json:"response"`
	Departments []string `json:"departments"`
}

type Bridge struct {
	store     database.Store
	completer Completer
	log       InteractionLog
	logger    *zap.Logger
}

// NewBridge wires the bridge. A nil log disables interaction recording.
func NewBridge(store database.Store, completer Completer, log InteractionLog, logger *zap.Logger) *Bridge {
	return &Bridge{store: store, completer: completer, log: log, logger: logger}
}

// Converse answers message for a patient. patientID 0, or an id with no
// record, sends the question without patient context. The asking user is
// taken from the session in ctx for the interaction log.
func (b *Bridge) Converse(ctx context.Context, patientID int, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, apperr.ValidationFields(map[string]string{"message": "Message is required"}, []string{"message"})
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return Reply{}, apperr.ValidationFields(map[string]string{
			"message": fmt.Sprintf("message must be at most %d characters", MaxMessageLength),
		}, []string{"message"})
	}

	patients, err := database.ReadAll[models.Patient](ctx, b.store, database.Patients)
	if err != nil {
		return Reply{}, apperr.Persistence(err)
	}
	var patient *models.Patient
	if p, ok := database.FindByID(patients, patientID); ok {
		patient = &p
	}

	var history []models.MedicalRecord
	if patient != nil {
		records, err := database.ReadAll[models.MedicalRecord](ctx, b.store, database.MedicalRecords)
		if err != nil {
			return Reply{}, apperr.Persistence(err)
		}
		history = recentHistory(records, patient.ID, HistoryLimit)
	}

	departments, err := database.ReadAll[models.Department](ctx, b.store, database.Departments)
	if err != nil {
		return Reply{}, apperr.Persistence(err)
	}

	text, err := b.completer.Complete(ctx, SystemPrompt, buildUserPrompt(patient, history, departments, message))
	if err != nil {
		if appErr := apperr.As(err); appErr.Kind == apperr.KindUpstream {
			return Reply{}, appErr
		}
		return Reply{}, apperr.Upstream(err)
	}

	reply := Reply{Response: text, Departments: ExtractDepartments(text, departments)}
	b.record(ctx, patient, message, reply)
	return reply, nil
}

func (b *Bridge) record(ctx context.Context, patient *models.Patient, message string, reply Reply) {
	if b.log == nil {
		return
	}
	in := models.ChatInteraction{
		Message:     message,
		Response:    reply.Response,
		Departments: reply.Departments,
		CreatedAt:   models.Now(),
	}
	if s, ok := session.FromContext(ctx); ok {
		in.UserID = s.UserID
	}
	if patient != nil {
		in.PatientID = patient.ID
	}
	if err := b.log.Record(ctx, in); err != nil {
		b.logger.Warn("failed to record chat interaction", zap.Int("user_id", in.UserID), zap.Error(err))
	}
}
