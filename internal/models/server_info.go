package models

// ServerInfo describes the instance serving the request.
// InstanceID and AvailabilityZone fall back to "unknown" when the
// metadata service is unreachable.
type ServerInfo struct {
	InstanceID       string `json:"instanceId"`
	AvailabilityZone string `json:"availabilityZone"`
	Hostname         string `json:"hostname"`
	Timestamp        string `json:"timestamp"`
}
