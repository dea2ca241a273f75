package service

import (
	"greenscore/internal/dto"
	"greenscore/internal/models"
	"greenscore/internal/scoring"
)

func toScoreResponse(s *models.Score) dto.ScoreResponse {
	return dto.ScoreResponse{
		Month:         s.Month,
		Year:          s.Year,
		EnergyScore:   s.EnergyScore,
		WaterScore:    s.WaterScore,
		WasteScore:    s.WasteScore,
		GreeneryScore: s.GreeneryScore,
		TotalScore:    s.TotalScore,
		CalculatedAt:  s.CalculatedAt,
	}
}

func toMeasurementResponse(kind scoring.Kind, m *models.Measurement) *dto.MeasurementResponse {
	return &dto.MeasurementResponse{
		ID:        m.ID,
		Kind:      kind.String(),
		Value:     m.Value,
		Month:     m.Month,
		Year:      m.Year,
		EnteredBy: m.EnteredBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toUserInfo(u *models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		IsAdmin:  u.IsAdmin(),
	}
}
