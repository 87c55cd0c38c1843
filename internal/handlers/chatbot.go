package handlers

import (
	"hospital-gin/internal/chatbot"
	"hospital-gin/internal/validation"

	"github.com/gin-gonic/gin"
)

type ChatRequest struct {
	Message string `json:"message" form:"message" binding:"required"`
}

// Chat forwards a patient's message to the triage assistant.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, validation.FromBinding(err))
		return
	}
	v, err := h.viewerFor(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	reply, err := h.chatbot.Converse(c.Request.Context(), v.patientID, req.Message)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, gin.H{"response": reply.Response, "departments": reply.Departments})
}

// ChatGreeting is the assistant's opening line.
func (h *Handler) ChatGreeting(c *gin.Context) {
	respond(c, gin.H{"response": chatbot.Greeting, "departments": []string{}})
}
