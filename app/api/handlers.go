package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeonho-kim/newsdigest/app/database"
	"github.com/yeonho-kim/newsdigest/app/scheduler"
)

func NewHandler(subscriberRepo database.SubscriberRepository,
	announcementRepo database.AnnouncementRepository,
	keywords KeywordSource, sched SchedulerInterface) *Handler {
	return &Handler{
		subscriberRepo:   subscriberRepo,
		announcementRepo: announcementRepo,
		keywords:         keywords,
		scheduler:        sched,
	}
}

type subscribeRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Keywords []string `json:"keywords"`
}

func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}
	if len(req.Keywords) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one keyword is required"})
		return
	}
	for _, keyword := range req.Keywords {
		if !h.keywords.HasKeyword(keyword) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Unknown keyword: " + keyword,
				"keywords": h.keywords.Keywords(),
			})
			return
		}
	}

	subscriber := database.Subscriber{
		Name:     req.Name,
		Email:    req.Email,
		Keywords: req.Keywords,
	}
	if err := h.subscriberRepo.Add(subscriber); err != nil {
		slog.Error("Database error", "operation", "add_subscriber", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register subscriber"})
		return
	}

	slog.Info("Subscriber registered", "email", subscriber.Email, "keywords", len(subscriber.Keywords))

	c.JSON(http.StatusCreated, gin.H{
		"name":     subscriber.Name,
		"email":    subscriber.Email,
		"keywords": subscriber.Keywords,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.subscriberRepo.Count(); err == nil {
		health["subscribers"] = count
	}

	health["loaded_sources"] = h.keywords.SourceCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"keywords": h.keywords.Keywords(),
	}

	if count, err := h.subscriberRepo.Count(); err == nil {
		stats["subscribers"] = count
	}

	if report := h.scheduler.LastReport(); report != nil {
		stats["last_run"] = map[string]interface{}{
			"started_at": report.StartedAt.Format(time.RFC3339),
			"attempted":  report.Attempted,
			"succeeded":  report.Succeeded,
			"failed":     len(report.Failures),
			"aborted":    report.Aborted(),
		}
	}

	c.JSON(http.StatusOK, stats)
}

type runRequest struct {
	Message string `json:"message"`
}

func (h *Handler) APITriggerRun(c *gin.Context) {
	var req runRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	report, err := h.scheduler.TriggerNow(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, scheduler.ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "A dispatch run is already in progress"})
			return
		}
		slog.Error("Dispatch trigger failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to trigger dispatch"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) APIGetReport(c *gin.Context) {
	report := h.scheduler.LastReport()
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No dispatch run has completed yet"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) APIGetAnnouncement(c *gin.Context) {
	announcement, err := h.announcementRepo.Get()
	if err != nil {
		slog.Error("Database error", "operation", "get_announcement", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    announcement.Message,
		"updated_at": announcement.UpdatedAt,
	})
}

type announcementRequest struct {
	Message string `json:"message"`
}

func (h *Handler) APISetAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.announcementRepo.Set(req.Message); err != nil {
		slog.Error("Database error", "operation", "set_announcement", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store announcement"})
		return
	}

	slog.Info("Announcement updated", "length", len(req.Message))

	c.JSON(http.StatusOK, gin.H{"message": req.Message})
}

func (h *Handler) APIListSubscribers(c *gin.Context) {
	subscribers, err := h.subscriberRepo.ListAll()
	if err != nil {
		slog.Error("Database error", "operation", "list_subscribers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscribers"})
		return
	}

	list := make([]map[string]interface{}, 0, len(subscribers))
	for _, sub := range subscribers {
		list = append(list, map[string]interface{}{
			"id":            sub.ID,
			"name":          sub.Name,
			"email":         sub.Email,
			"keywords":      sub.Keywords,
			"registered_at": sub.RegisteredAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(list),
		"subscribers": list,
	})
}
