package dto

import "gorm.io/datatypes"

type RegisterDeviceRequest struct {
	DeviceID   string         `json:"device_id"`
	DeviceInfo string         `json:"device_info,omitempty"`
	AppVersion string         `json:"app_version,omitempty"`
	Platform   string         `json:"platform,omitempty"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
}

type RegisterDeviceResponse struct {
	Message  string `json:"message"`
	DeviceID string `json:"device_id"`
	Created  bool   `json:"created"`
}

type HeartbeatRequest struct {
	DeviceID string `json:"device_id"`
}
