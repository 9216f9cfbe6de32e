package dto

import "xyzbank/internal/domain/registry"

type RegistryResponse struct {
	MaxRecords       int `json:"maxRecords"`
	RecordCount      int `json:"recordCount"`
	AvailableRecords int `json:"availableRecords"`
	Customers        int `json:"customers"`
}

func NewRegistryResponse(s registry.Summary) RegistryResponse {
	return RegistryResponse{
		MaxRecords:       s.MaxRecords,
		RecordCount:      s.RecordCount,
		AvailableRecords: max(s.MaxRecords-s.RecordCount, 0),
		Customers:        s.Customers,
	}
}
