package certificates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"certportal/certificate-portal-backend/internal/certificates/export"
	"certportal/certificate-portal-backend/internal/render"
)

var (
	// ErrInvalid marks a validation failure in caller-supplied data.
	ErrInvalid = errors.New("invalid certificate data")
	// ErrDuplicateSerialNo is returned in strict serial-number mode when a
	// create or update would reuse an existing serial number.
	ErrDuplicateSerialNo = errors.New("serial number already exists")
)

const dateLayout = "2006-01-02"

// PhotoStore persists uploaded photos and hands back the stored reference.
type PhotoStore interface {
	Save(serialNo, filename string, r io.Reader) (string, error)
}

// FilePhotoStore stores photos on the local filesystem under Dir, named
// {serialNo}_{uuid}{ext} so repeated uploads never collide.
type FilePhotoStore struct {
	Dir string
}

func (s FilePhotoStore) Save(serialNo, filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create photo dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s%s", serialNo, uuid.NewString(), filepath.Ext(filename))
	path := filepath.Join(s.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to store photo: %w", err)
	}
	return path, nil
}

// CaptionSource supplies the admin-edited footer caption for rendering. An
// empty caption means "use the configured default".
type CaptionSource interface {
	FooterCaption(ctx context.Context) string
}

// ServiceOptions configures certificate business rules.
type ServiceOptions struct {
	// SerialNoUnique enables the strict serial-number policy: no two records
	// may share a serial number.
	SerialNoUnique bool
}

// Service implements certificate management on top of the record store and
// the rendering pipeline.
type Service struct {
	repo     Repository
	composer *render.Composer
	photos   PhotoStore
	captions CaptionSource
	options  ServiceOptions
	logger   *zap.Logger
}

// NewService creates a certificate service. captions may be nil when no
// runtime caption editing is wired in.
func NewService(repo Repository, composer *render.Composer, photos PhotoStore, captions CaptionSource, options ServiceOptions, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		composer: composer,
		photos:   photos,
		captions: captions,
		options:  options,
		logger:   logger,
	}
}

// SavePhoto stores an uploaded photo and returns its reference.
func (s *Service) SavePhoto(serialNo, filename string, r io.Reader) (string, error) {
	return s.photos.Save(serialNo, filename, r)
}

// Create validates and stores a new certificate record. photoRef may be nil
// for records without a photo.
func (s *Service) Create(ctx context.Context, req CreateRequest, photoRef *string) (*Certificate, error) {
	date, err := parseRequestDate(req.DateOfCertificate)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, req.CertificateNo, req.SerialNo, 0); err != nil {
		return nil, err
	}

	cert := &Certificate{
		SerialNo:          req.SerialNo,
		Name:              req.Name,
		CourseName:        req.CourseName,
		City:              req.City,
		Country:           req.Country,
		CertificateNo:     req.CertificateNo,
		DateOfCertificate: date,
		Photo:             photoRef,
		AccessBy:          DefaultAccessBy,
		Website:           req.Website,
	}
	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info("certificate created",
		zap.Int("id", cert.ID),
		zap.String("certificate_no", cert.CertificateNo))
	return cert, nil
}

// Update edits a record in place. A nil photoRef keeps the stored photo.
func (s *Service) Update(ctx context.Context, id int, req UpdateRequest, photoRef *string) (*Certificate, error) {
	cert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, ErrNotFound
	}

	date, err := parseRequestDate(req.DateOfCertificate)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, req.CertificateNo, req.SerialNo, id); err != nil {
		return nil, err
	}

	cert.SerialNo = req.SerialNo
	cert.Name = req.Name
	cert.CourseName = req.CourseName
	cert.City = req.City
	cert.Country = req.Country
	cert.CertificateNo = req.CertificateNo
	cert.DateOfCertificate = date
	cert.AccessBy = DefaultAccessBy
	cert.Website = req.Website
	if photoRef != nil {
		cert.Photo = photoRef
	}

	if err := s.repo.Update(ctx, cert); err != nil {
		return nil, err
	}
	return cert, nil
}

// Delete removes a record. There is no soft delete.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, id int) (*Certificate, error) {
	cert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, ErrNotFound
	}
	return cert, nil
}

// List returns all records ordered by id.
func (s *Service) List(ctx context.Context) ([]Certificate, error) {
	return s.repo.List(ctx)
}

// Verify is the public certificate-number lookup.
func (s *Service) Verify(ctx context.Context, certificateNo string) (*VerificationResponse, error) {
	cert, err := s.repo.GetByCertificateNo(ctx, certificateNo)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, ErrNotFound
	}
	return &VerificationResponse{
		Verified:          true,
		SerialNo:          cert.SerialNo,
		Name:              cert.Name,
		CourseName:        cert.CourseName,
		City:              cert.City,
		Country:           cert.Country,
		CertificateNo:     cert.CertificateNo,
		DateOfCertificate: cert.DateOfCertificate.Format(dateLayout),
	}, nil
}

// RenderByID composes the printable document for one record and returns the
// buffer with its download filename.
func (s *Service) RenderByID(ctx context.Context, id int) ([]byte, string, error) {
	cert, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return s.renderCertificate(ctx, cert)
}

// RenderByCertificateNo composes the printable document for the public
// verification flow.
func (s *Service) RenderByCertificateNo(ctx context.Context, certificateNo string) ([]byte, string, error) {
	cert, err := s.repo.GetByCertificateNo(ctx, certificateNo)
	if err != nil {
		return nil, "", err
	}
	if cert == nil {
		return nil, "", ErrNotFound
	}
	return s.renderCertificate(ctx, cert)
}

func (s *Service) renderCertificate(ctx context.Context, cert *Certificate) ([]byte, string, error) {
	caption := ""
	if s.captions != nil {
		caption = s.captions.FooterCaption(ctx)
	}
	buf, err := s.composer.ComposeWithCaption(ctx, toRenderData(cert), cert.PhotoRef(), caption)
	if err != nil {
		s.logger.Error("failed to compose certificate document",
			zap.String("certificate_no", cert.CertificateNo),
			zap.Error(err))
		return nil, "", err
	}
	return buf, cert.CertificateNo + ".pdf", nil
}

// Import stores one record per parsed row, with access_by defaulted. Rows
// violating the uniqueness policies are skipped and reported.
func (s *Service) Import(ctx context.Context, rows []export.Row) ImportResult {
	result := ImportResult{}
	for i, row := range rows {
		var photo *string
		if row.Photo != "" {
			p := row.Photo
			photo = &p
		}

		cert := &Certificate{
			SerialNo:          row.SerialNo,
			Name:              row.Name,
			CourseName:        row.CourseName,
			City:              row.City,
			Country:           row.Country,
			CertificateNo:     row.CertificateNo,
			DateOfCertificate: row.DateOfCertificate,
			Photo:             photo,
			AccessBy:          DefaultAccessBy,
			Website:           row.Website,
		}

		if err := s.checkUnique(ctx, cert.CertificateNo, cert.SerialNo, 0); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if err := s.repo.Create(ctx, cert); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	s.logger.Info("bulk import finished",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result
}

// ExportRows returns all stored records as spreadsheet rows.
func (s *Service) ExportRows(ctx context.Context) ([]export.Row, error) {
	certs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]export.Row, 0, len(certs))
	for _, cert := range certs {
		rows = append(rows, export.Row{
			SerialNo:          cert.SerialNo,
			Name:              cert.Name,
			CourseName:        cert.CourseName,
			City:              cert.City,
			Country:           cert.Country,
			CertificateNo:     cert.CertificateNo,
			DateOfCertificate: cert.DateOfCertificate,
			Photo:             cert.PhotoRef(),
			Website:           cert.Website,
		})
	}
	return rows, nil
}

// checkUnique enforces the certificate-number invariant and, in strict mode,
// the serial-number policy. excludeID skips the record being updated.
func (s *Service) checkUnique(ctx context.Context, certificateNo, serialNo string, excludeID int) error {
	existing, err := s.repo.GetByCertificateNo(ctx, certificateNo)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != excludeID {
		return ErrDuplicateCertificateNo
	}

	if s.options.SerialNoUnique {
		existing, err := s.repo.GetBySerialNo(ctx, serialNo)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return ErrDuplicateSerialNo
		}
	}
	return nil
}

func toRenderData(cert *Certificate) render.Data {
	return render.Data{
		SerialNo:          cert.SerialNo,
		Name:              cert.Name,
		CourseName:        cert.CourseName,
		City:              cert.City,
		Country:           cert.Country,
		CertificateNo:     cert.CertificateNo,
		DateOfCertificate: cert.DateOfCertificate,
		AccessBy:          cert.AccessBy,
		Website:           cert.Website,
	}
}

func parseRequestDate(s string) (time.Time, error) {
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date_of_certificate must be YYYY-MM-DD", ErrInvalid)
	}
	return date, nil
}
