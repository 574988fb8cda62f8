package monitor

// SetStatus returns a setter that updates the deployment status.
func SetStatus(status Status) UpdateSetter {
	return func() map[string]interface{} {
		return map[string]interface{}{"status": status}
	}
}

// SetDeployed returns a setter that records a successful deployment.
func SetDeployed(monitorURL, monitorID string) UpdateSetter {
	return func() map[string]interface{} {
		columns := map[string]interface{}{
			"status":      StatusDeployed,
			"monitor_url": monitorURL,
		}
		if monitorID != "" {
			columns["monitor_id"] = monitorID
		}
		return columns
	}
}

// SetErrorMessage returns a setter that records a deployment error.
func SetErrorMessage(message string) UpdateSetter {
	return func() map[string]interface{} {
		return map[string]interface{}{"error_message": message}
	}
}
