package service

import (
	"context"
	"storefront-service/internal/model"
	"storefront-service/internal/revalidate"
	"storefront-service/internal/validation"
	"storefront-service/pkg/logger"
	"storefront-service/pkg/metrics"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BannerInput is the admin form for a new banner
type BannerInput struct {
	Title       string `json:"titulo" validate:"required,max=100"`
	Subtitle    string `json:"subtitulo" validate:"max=150"`
	Description string `json:"descricao" validate:"max=500"`
	ImageURL    string `json:"imagemUrl" validate:"omitempty,url"`
	LinkURL     string `json:"linkUrl" validate:"omitempty,url"`
	ButtonText  string `json:"textoBotao" validate:"max=50"`
	Active      *bool  `json:"ativo"`
	Ordem       *int   `json:"ordem" validate:"omitempty,gte=0"`
}

// BannerUpdateInput edits a banner. An empty title keeps the current one;
// every other field keeps its value when nil.
type BannerUpdateInput struct {
	Title       string  `json:"titulo" validate:"max=100"`
	Subtitle    *string `json:"subtitulo" validate:"omitempty,max=150"`
	Description *string `json:"descricao" validate:"omitempty,max=500"`
	ImageURL    *string `json:"imagemUrl" validate:"omitempty,url"`
	LinkURL     *string `json:"linkUrl" validate:"omitempty,url"`
	ButtonText  *string `json:"textoBotao" validate:"omitempty,max=50"`
	Active      *bool   `json:"ativo"`
	Ordem       *int    `json:"ordem" validate:"omitempty,gte=0"`
}

var bannerMessages = map[string]string{
	"titulo.required": "Título é obrigatório",
	"titulo.max":      "Título muito longo",
	"subtitulo.max":   "Subtítulo muito longo",
	"descricao.max":   "Descrição muito longa",
	"imagemUrl.url":   "URL da imagem inválida.",
	"linkUrl.url":     "URL do link inválida",
	"textoBotao.max":  "Texto do botão muito longo",
	"ordem.gte":       "A ordem deve ser um número não negativo.",
}

func (BannerInput) ValidationMessages() map[string]string { return bannerMessages }

func (BannerUpdateInput) ValidationMessages() map[string]string { return bannerMessages }

// Banners keeps the ordem sequence of home page banners consistent
type Banners struct {
	db    *gorm.DB
	views *revalidate.Registry
}

func NewBanners(db *gorm.DB, views *revalidate.Registry) *Banners {
	return &Banners{db: db, views: views}
}

// Create inserts a banner. If another banner already holds the requested
// ordem, banners at exactly that ordem are pushed down by one first.
func (s *Banners) Create(ctx context.Context, in BannerInput) (*model.Banner, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	banner := model.Banner{
		Title:       in.Title,
		Subtitle:    strings.TrimSpace(in.Subtitle),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		LinkURL:     strings.TrimSpace(in.LinkURL),
		ButtonText:  strings.TrimSpace(in.ButtonText),
		Active:      true,
	}
	if in.Active != nil {
		banner.Active = *in.Active
	}
	if in.Ordem != nil {
		banner.Ordem = *in.Ordem
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&model.Banner{}).Where("ordem = ?", banner.Ordem).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			err := tx.Model(&model.Banner{}).
				Where("ordem = ?", banner.Ordem).
				Update("ordem", gorm.Expr("ordem + 1")).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(&banner).Error
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Banner created",
		zap.Uint("banner_id", banner.ID),
		zap.Int("ordem", banner.Ordem))
	metrics.RecordCatalogOperation("banner", "create")
	s.views.Invalidate(revalidate.ViewBanners)
	return &banner, nil
}

// Update replaces the banner fields and shifts the banners between the old
// and new ordem so the sequence stays gapless.
func (s *Banners) Update(ctx context.Context, id uint, in BannerUpdateInput) (*model.Banner, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	var banner model.Banner
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&banner, id).Error; err != nil {
			return lookup(err, "Banner não encontrado")
		}

		if in.Ordem != nil && *in.Ordem != banner.Ordem {
			oldOrdem, newOrdem := banner.Ordem, *in.Ordem
			q := tx.Model(&model.Banner{}).Where("id <> ?", banner.ID)
			var err error
			if newOrdem > oldOrdem {
				err = q.Where("ordem > ? AND ordem <= ?", oldOrdem, newOrdem).
					Update("ordem", gorm.Expr("ordem - 1")).Error
			} else {
				err = q.Where("ordem >= ? AND ordem < ?", newOrdem, oldOrdem).
					Update("ordem", gorm.Expr("ordem + 1")).Error
			}
			if err != nil {
				return err
			}
			banner.Ordem = newOrdem
		}

		if in.Title != "" {
			banner.Title = in.Title
		}
		assign(&banner.Subtitle, in.Subtitle)
		assign(&banner.Description, in.Description)
		assign(&banner.ImageURL, in.ImageURL)
		assign(&banner.LinkURL, in.LinkURL)
		assign(&banner.ButtonText, in.ButtonText)
		if in.Active != nil {
			banner.Active = *in.Active
		}
		return tx.Save(&banner).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCatalogOperation("banner", "update")
	s.views.Invalidate(revalidate.ViewBanners)
	return &banner, nil
}

// assign overwrites dst with the trimmed value when one was submitted
func assign(dst *string, value *string) {
	if value != nil {
		*dst = strings.TrimSpace(*value)
	}
}

// Delete removes a banner and closes the gap it leaves in the ordem sequence
func (s *Banners) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var banner model.Banner
		if err := tx.First(&banner, id).Error; err != nil {
			return lookup(err, "Banner não encontrado")
		}
		if err := tx.Delete(&banner).Error; err != nil {
			return err
		}
		return tx.Model(&model.Banner{}).
			Where("ordem > ?", banner.Ordem).
			Update("ordem", gorm.Expr("ordem - 1")).Error
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Banner deleted", zap.Uint("banner_id", id))
	metrics.RecordCatalogOperation("banner", "delete")
	s.views.Invalidate(revalidate.ViewBanners)
	return nil
}

// ToggleActive flips the active flag and leaves everything else untouched
func (s *Banners) ToggleActive(ctx context.Context, id uint) (*model.Banner, error) {
	var banner model.Banner
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&banner, id).Error; err != nil {
			return lookup(err, "Banner não encontrado")
		}
		banner.Active = !banner.Active
		return tx.Model(&banner).Update("active", banner.Active).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCatalogOperation("banner", "toggle")
	s.views.Invalidate(revalidate.ViewBanners)
	return &banner, nil
}

func (s *Banners) List(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	err := s.db.WithContext(ctx).Order("ordem asc").Order("created_at desc").Find(&banners).Error
	return banners, err
}

// ListActive returns the banners shown on the home page
func (s *Banners) ListActive(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("ordem asc").Order("created_at desc").
		Find(&banners).Error
	return banners, err
}

func (s *Banners) Get(ctx context.Context, id uint) (*model.Banner, error) {
	var banner model.Banner
	if err := s.db.WithContext(ctx).First(&banner, id).Error; err != nil {
		return nil, lookup(err, "Banner não encontrado")
	}
	return &banner, nil
}
