package persona

import (
	"errors"
	"io"
	"strings"

	"github.com/basedcaster/core/internal/modules/tweets"
	"github.com/basedcaster/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	msgUsernameMissing = "Please enter a Twitter username."
	msgUsernameNeeded  = "Twitter username is required."
	msgTweetsKeyAbsent = "Twitter API key is not configured."
	msgGeneric         = "Something went wrong."
	msgImageFailed     = "Failed to generate image."
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.POST("/poster", h.poster)
	rg.POST("/ideas", h.allIdeas)
	rg.POST("/ideas/:category", h.ideas)
}

// POST /api/analyze
func (h *Handler) analyze(c *gin.Context) {
	var dto analyzeDTO
	if !bindOptionalJSON(c, &dto) {
		return
	}
	username := normalizeUsername(dto.Username)
	if username == "" {
		response.ActionFailed(c, msgUsernameMissing)
		return
	}

	result, err := h.svc.AnalyzeUser(c.Request.Context(), username)
	if err != nil {
		response.ActionFailed(c, userMessage(err))
		return
	}
	response.ActionOK(c, gin.H{"username": username, "result": result})
}

// POST /api/poster
func (h *Handler) poster(c *gin.Context) {
	var dto posterDTO
	if !bindOptionalJSON(c, &dto) {
		return
	}

	outcome := h.svc.SynthesizePoster(c.Request.Context(), PosterRequest{
		Username:    dto.Username,
		Score:       ClampScore(dto.Score),
		Personality: dto.Personality,
		Emoji:       dto.Emoji,
	})
	if outcome.Value == "" {
		response.ActionFailed(c, msgImageFailed)
		return
	}
	response.ActionOK(c, gin.H{"imageDataUrl": outcome.Value})
}

// POST /api/ideas/:category
func (h *Handler) ideas(c *gin.Context) {
	category, ok := ParseCategory(c.Param("category"))
	if !ok {
		response.BadRequest(c, "unknown idea category")
		return
	}
	var dto ideasDTO
	if !bindOptionalJSON(c, &dto) {
		return
	}

	outcome, err := h.svc.GenerateIdeas(c.Request.Context(), category, dto.Personality)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.ActionOK(c, gin.H{"items": outcome.Value, "status": outcome.Status})
}

// POST /api/ideas
func (h *Handler) allIdeas(c *gin.Context) {
	var dto ideasDTO
	if !bindOptionalJSON(c, &dto) {
		return
	}

	outcomes := h.svc.GenerateAllIdeas(c.Request.Context(), dto.Personality)
	body := gin.H{}
	for category, outcome := range outcomes {
		body[string(category)] = outcome.Value
	}
	response.ActionOK(c, body)
}

// bindOptionalJSON decodes the body into dto; an empty body leaves dto zero.
func bindOptionalJSON(c *gin.Context, dto interface{}) bool {
	if err := c.ShouldBindJSON(dto); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, err.Error())
		return false
	}
	return true
}

func normalizeUsername(raw string) string {
	username := strings.TrimSpace(raw)
	return strings.TrimPrefix(username, "@")
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, tweets.ErrUsernameRequired):
		return msgUsernameNeeded
	case errors.Is(err, tweets.ErrAPIKeyMissing):
		return msgTweetsKeyAbsent
	case strings.TrimSpace(err.Error()) != "":
		return err.Error()
	default:
		return msgGeneric
	}
}
