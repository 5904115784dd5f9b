package certificates

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a certificate id does not exist.
	ErrNotFound = errors.New("certificate not found")
	// ErrDuplicateCertificateNo is returned when a create or update would
	// leave two records with the same certificate number.
	ErrDuplicateCertificateNo = errors.New("certificate number already exists")
)

// Repository is the record store for certificates.
type Repository interface {
	Create(ctx context.Context, cert *Certificate) error
	Update(ctx context.Context, cert *Certificate) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*Certificate, error)
	// GetByCertificateNo returns at most one record; (nil, nil) when absent.
	GetByCertificateNo(ctx context.Context, certificateNo string) (*Certificate, error)
	GetBySerialNo(ctx context.Context, serialNo string) (*Certificate, error)
	List(ctx context.Context) ([]Certificate, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed certificate repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Migrate creates or updates the certificates table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Certificate{})
}

func (r *gormRepository) Create(ctx context.Context, cert *Certificate) error {
	if err := r.db.WithContext(ctx).Create(cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCertificateNo
		}
		return fmt.Errorf("failed to create certificate: %w", err)
	}
	return nil
}

func (r *gormRepository) Update(ctx context.Context, cert *Certificate) error {
	result := r.db.WithContext(ctx).Save(cert)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCertificateNo
		}
		return fmt.Errorf("failed to update certificate: %w", result.Error)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&Certificate{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete certificate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository) GetByID(ctx context.Context, id int) (*Certificate, error) {
	var cert Certificate
	err := r.db.WithContext(ctx).First(&cert, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}
	return &cert, nil
}

func (r *gormRepository) GetByCertificateNo(ctx context.Context, certificateNo string) (*Certificate, error) {
	var cert Certificate
	err := r.db.WithContext(ctx).Where("certificate_no = ?", certificateNo).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up certificate: %w", err)
	}
	return &cert, nil
}

func (r *gormRepository) GetBySerialNo(ctx context.Context, serialNo string) (*Certificate, error) {
	var cert Certificate
	err := r.db.WithContext(ctx).Where("serial_no = ?", serialNo).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up certificate: %w", err)
	}
	return &cert, nil
}

func (r *gormRepository) List(ctx context.Context) ([]Certificate, error) {
	var certs []Certificate
	if err := r.db.WithContext(ctx).Order("id").Find(&certs).Error; err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certs, nil
}
