package stunting

import (
	"context"
	"math"
	"time"

	"github.com/andriansp/smartdesa-backend/internal/stunting/dto"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	"github.com/andriansp/smartdesa-backend/pkg/errors"
)

const birthDateLayout = "2006-01-02"

// Service computes height-for-age Z-scores against the WHO child growth
// standards. It is a pure calculation with no persistence.
type Service interface {
	Calculate(ctx context.Context, req dto.CalculateRequest) (*dto.CalculateResult, error)
}

type service struct {
	now func() time.Time
}

func NewService() Service {
	return &service{now: time.Now}
}

func (s *service) Calculate(_ context.Context, req dto.CalculateRequest) (*dto.CalculateResult, error) {
	gender, err := enums.ParseGender(req.Gender)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, "gender must be boys or girls")
	}
	if req.Height < 10 || req.Height > 200 {
		return nil, errors.New(errors.CodeValidation, "height must be between 10 and 200 cm")
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, "birth_date must be formatted as YYYY-MM-DD")
	}
	today := s.now().UTC()
	if !birthDate.Before(today) {
		return nil, errors.New(errors.CodeValidation, "birth_date must be in the past")
	}

	ageMonths := ageInMonths(birthDate, today)
	standards, ok := lookupStandards(gender, ageMonths)
	if !ok {
		return nil, errors.New(errors.CodeBadRequest, "age must be between 0 and 60 months")
	}

	haz := hazScore(req.Height, standards)
	status := classify(haz)

	return &dto.CalculateResult{
		AgeMonths:      ageMonths,
		Height:         req.Height,
		MedianHeight:   standards.Median,
		HazScore:       haz,
		Status:         status.String(),
		Standards:      standards,
		Interpretation: interpretationFor(status),
	}, nil
}

// ageInMonths truncates the birth date to month granularity. A child born
// after the 15th counts as born in the following month.
func ageInMonths(birthDate, today time.Time) int {
	year, month, day := birthDate.Date()
	if day > 15 {
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	months := (today.Year()-year)*12 + int(today.Month()) - int(month)
	return months
}

// hazScore follows the WHO simplified Z-score formula: the divisor is the
// width of the SD band on the side of the median the measurement falls on.
func hazScore(height float64, std dto.Standards) float64 {
	var haz float64
	if height >= std.Median {
		haz = (height - std.Median) / (std.SD1 - std.Median)
	} else {
		haz = (height - std.Median) / (std.Median - std.SD1neg)
	}
	return math.Round(haz*100) / 100
}

func classify(haz float64) enums.StuntingStatus {
	switch {
	case haz < -3:
		return enums.StuntingStatusSeverelyStunted
	case haz < -2:
		return enums.StuntingStatusStunted
	case haz <= 2:
		return enums.StuntingStatusNormal
	default:
		return enums.StuntingStatusTall
	}
}

func interpretationFor(status enums.StuntingStatus) dto.Interpretation {
	switch status {
	case enums.StuntingStatusSeverelyStunted:
		return dto.Interpretation{
			Title:          "Severely Stunted",
			Description:    "Height is far below the expected range for this age (below -3 SD).",
			Recommendation: "Seek immediate evaluation at a health facility and follow a supervised nutrition recovery plan.",
			Color:          "#dc2626",
		}
	case enums.StuntingStatusStunted:
		return dto.Interpretation{
			Title:          "Stunted",
			Description:    "Height is below the expected range for this age (between -3 SD and -2 SD).",
			Recommendation: "Consult the local posyandu or puskesmas, improve dietary protein intake, and monitor growth monthly.",
			Color:          "#f59e0b",
		}
	case enums.StuntingStatusTall:
		return dto.Interpretation{
			Title:          "Tall",
			Description:    "Height is above the expected range for this age (above +2 SD).",
			Recommendation: "Generally no concern. Keep regular growth monitoring to rule out endocrine issues.",
			Color:          "#3b82f6",
		}
	default:
		return dto.Interpretation{
			Title:          "Normal",
			Description:    "Height is within the healthy range for this age (between -2 SD and +2 SD).",
			Recommendation: "Maintain balanced nutrition and routine growth monitoring.",
			Color:          "#16a34a",
		}
	}
}
