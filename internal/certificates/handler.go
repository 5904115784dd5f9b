package certificates

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"certportal/certificate-portal-backend/internal/certificates/export"
	"certportal/certificate-portal-backend/internal/render"
)

// Handler handles HTTP requests for certificate management and public
// verification.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new certificates handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdminRoutes registers the admin-only certificate routes. The group
// is expected to carry the auth middleware.
func (h *Handler) RegisterAdminRoutes(router *gin.RouterGroup) {
	certs := router.Group("/certificates")
	{
		certs.POST("", h.createCertificate)
		certs.GET("", h.listCertificates)
		certs.GET("/:id", h.getCertificate)
		certs.PUT("/:id", h.updateCertificate)
		certs.DELETE("/:id", h.deleteCertificate)
		certs.GET("/:id/pdf", h.downloadCertificate)

		certs.POST("/import", h.importCertificates)
		certs.GET("/export", h.exportCertificates)
	}
}

// RegisterPublicRoutes registers the unauthenticated verification routes.
func (h *Handler) RegisterPublicRoutes(router *gin.RouterGroup) {
	verify := router.Group("/verify")
	{
		verify.GET("/:certificateNo", h.verifyCertificate)
		verify.GET("/:certificateNo/pdf", h.verifiedCertificatePDF)
	}
}

// createCertificate handles POST /api/v1/certificates
func (h *Handler) createCertificate(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	photoRef, err := h.storeUploadedPhoto(c, req.SerialNo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cert, err := h.service.Create(c.Request.Context(), req, photoRef)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cert)
}

// listCertificates handles GET /api/v1/certificates
func (h *Handler) listCertificates(c *gin.Context) {
	certs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, certs)
}

// getCertificate handles GET /api/v1/certificates/:id
func (h *Handler) getCertificate(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	cert, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

// updateCertificate handles PUT /api/v1/certificates/:id
func (h *Handler) updateCertificate(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	photoRef, err := h.storeUploadedPhoto(c, req.SerialNo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cert, err := h.service.Update(c.Request.Context(), id, req, photoRef)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

// deleteCertificate handles DELETE /api/v1/certificates/:id
func (h *Handler) deleteCertificate(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// downloadCertificate handles GET /api/v1/certificates/:id/pdf
func (h *Handler) downloadCertificate(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	buf, filename, err := h.service.RenderByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf)
}

// importCertificates handles POST /api/v1/certificates/import
func (h *Handler) importCertificates(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing import file"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	var (
		rows      []export.Row
		parseErrs []string
	)
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		rows, parseErrs, err = export.ReadCSV(f)
	case ".xlsx":
		rows, parseErrs, err = export.ReadExcel(f)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "import file must be .csv or .xlsx"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.service.Import(c.Request.Context(), rows)
	result.Errors = append(parseErrs, result.Errors...)
	result.Skipped += len(parseErrs)
	c.JSON(http.StatusOK, result)
}

// exportCertificates handles GET /api/v1/certificates/export
func (h *Handler) exportCertificates(c *gin.Context) {
	rows, err := h.service.ExportRows(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	var buf bytes.Buffer
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		if err := export.WriteCSV(&buf, rows); err != nil {
			h.writeError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="certificates.csv"`)
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	case "xlsx":
		if err := export.WriteExcel(&buf, rows); err != nil {
			h.writeError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="certificates.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
	}
}

// verifyCertificate handles GET /api/v1/verify/:certificateNo
func (h *Handler) verifyCertificate(c *gin.Context) {
	resp, err := h.service.Verify(c.Request.Context(), c.Param("certificateNo"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// verifiedCertificatePDF handles GET /api/v1/verify/:certificateNo/pdf.
// With ?encoding=base64 it returns a JSON-wrapped base64 preview suitable
// for inline embedding.
func (h *Handler) verifiedCertificatePDF(c *gin.Context) {
	buf, filename, err := h.service.RenderByCertificateNo(c.Request.Context(), c.Param("certificateNo"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	if c.Query("encoding") == "base64" {
		c.JSON(http.StatusOK, gin.H{
			"filename": filename,
			"data":     base64.StdEncoding.EncodeToString(buf),
		})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf)
}

func (h *Handler) pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certificate ID"})
		return 0, false
	}
	return id, true
}

// storeUploadedPhoto saves the optional "photo" multipart file and returns
// its stored reference, or nil when no photo was uploaded.
func (h *Handler) storeUploadedPhoto(c *gin.Context, serialNo string) (*string, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return nil, nil
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read photo upload: %w", err)
	}
	defer f.Close()

	ref, err := h.service.SavePhoto(serialNo, fileHeader.Filename, f)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var renderErr *render.RenderError
	var composeErr *render.ComposeError

	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "certificate not found"})
	case errors.Is(err, ErrDuplicateCertificateNo), errors.Is(err, ErrDuplicateSerialNo):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &renderErr), errors.As(err, &composeErr):
		h.logger.Error("could not generate document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate document"})
	default:
		h.logger.Error("certificate request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
