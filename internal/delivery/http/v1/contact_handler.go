package v1

import (
	"errors"
	"net/http"

	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/internal/domain"
	"go-agency-backend/internal/i18n"
	"go-agency-backend/internal/metrics"
	"go-agency-backend/pkg/apperror"
	"go-agency-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ContactHandler struct {
	contactUC   domain.ContactUsecase
	verifier    domain.TokenVerifier
	geo         domain.GeoResolver
	metrics     *metrics.Metrics
	defaultLang string
}

// ContactHandlerDeps wires the contact endpoints' collaborators.
type ContactHandlerDeps struct {
	ContactUC   domain.ContactUsecase
	Verifier    domain.TokenVerifier
	Geo         domain.GeoResolver
	Metrics     *metrics.Metrics
	DefaultLang string
}

// NewContactHandler registers the public contact routes. The rate limiter
// guards only the submission endpoint.
func NewContactHandler(public *gin.RouterGroup, deps ContactHandlerDeps, rateLimit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC:   deps.ContactUC,
		verifier:    deps.Verifier,
		geo:         deps.Geo,
		metrics:     deps.Metrics,
		defaultLang: deps.DefaultLang,
	}

	if rateLimit != nil {
		public.POST("/contact", rateLimit, handler.SubmitContact)
	} else {
		public.POST("/contact", handler.SubmitContact)
	}
	public.POST("/verify-recaptcha", handler.VerifyRecaptcha)
	public.GET("/locale", handler.Locale)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send a message through the contact form. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.SubmissionRequest  true  "Contact Form Data"
// @Success      200      {object}  domain.SubmissionOutcome
// @Failure      400      {object}  domain.SubmissionOutcome
// @Failure      401      {object}  domain.SubmissionOutcome
// @Failure      500      {object}  domain.SubmissionOutcome
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	lang := h.language(c)

	var req domain.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			// Required fields missing or malformed values
			h.metrics.RecordSubmission(http.StatusBadRequest)
			c.Error(apperror.BadRequest(i18n.Message(lang, i18n.KeyMissingFields)))
			return
		}
		// Body is not valid JSON at all
		h.metrics.RecordSubmission(http.StatusInternalServerError)
		c.Error(apperror.New(http.StatusInternalServerError, i18n.Message(lang, i18n.KeyInternalError), err))
		return
	}

	outcome, status := h.contactUC.Submit(c.Request.Context(), &req, lang)
	h.metrics.RecordSubmission(status)
	c.JSON(status, outcome)
}

type verifyRequest struct {
	Token string `json:"token" binding:"required"`
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score,omitempty"`
	Action     string   `json:"action,omitempty"`
	Error      string   `json:"error,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// VerifyRecaptcha godoc
// @Summary      Verify reCAPTCHA Token
// @Description  Check a client-supplied reCAPTCHA token against the verification service.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        token  body      verifyRequest  true  "Token to verify"
// @Success      200    {object}  verifyResponse
// @Failure      400    {object}  verifyResponse
// @Failure      500    {object}  verifyResponse
// @Router       /verify-recaptcha [post]
func (h *ContactHandler) VerifyRecaptcha(c *gin.Context) {
	lang := h.language(c)

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, verifyResponse{
			Success: false,
			Error:   i18n.Message(lang, i18n.KeyMissingToken),
		})
		return
	}

	if !h.verifier.Configured() {
		// Same degrade-to-open policy as the submission pipeline
		logger.Log.Warn("recaptcha secret not configured, reporting token as accepted")
		c.JSON(http.StatusOK, verifyResponse{Success: true})
		return
	}

	result, err := h.verifier.Verify(c.Request.Context(), req.Token)
	if err != nil {
		logger.Log.Error("recaptcha verification failed", "error", err)
		c.JSON(http.StatusInternalServerError, verifyResponse{
			Success: false,
			Error:   i18n.Message(lang, i18n.KeyVerifyError),
		})
		return
	}

	h.metrics.RecordVerification(result.Passed)
	c.JSON(http.StatusOK, verifyResponse{
		Success:    result.Passed,
		Score:      result.Score,
		Action:     result.Action,
		ErrorCodes: result.ErrorCodes,
	})
}

// Locale godoc
// @Summary      Detect Default Language
// @Description  Resolve the visitor's country from their IP and suggest a site language.
// @Tags         locale
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /locale [get]
func (h *ContactHandler) Locale(c *gin.Context) {
	lang := h.defaultLang
	country := ""

	resolved, err := h.geo.CountryCode(c.Request.Context(), c.ClientIP())
	if err != nil {
		// Lookup failures fall back to the configured default silently
		logger.Log.Debug("geoip lookup failed", "error", err)
	} else {
		country = resolved
		lang = i18n.LanguageForCountry(resolved)
	}

	response.Success(c, http.StatusOK, "Locale resolved", gin.H{
		"country":  country,
		"language": lang,
	})
}

// language picks the response language from the Accept-Language header,
// falling back to the configured default.
func (h *ContactHandler) language(c *gin.Context) string {
	if lang := c.GetHeader("Accept-Language"); lang != "" {
		return lang
	}
	return h.defaultLang
}
