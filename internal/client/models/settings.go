package models

// SettingsRecord is the singleton notification configuration. There is no
// create or delete: it is always fetched and replaced as a whole.
type SettingsRecord struct {
	DingtalkWebhook string `json:"dingtalk_webhook"`
	DingtalkSecret  string `json:"dingtalk_secret"`
}

// PasswordChangeRequest is transient: it is submitted once and never stored
// or rendered back on the client.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
