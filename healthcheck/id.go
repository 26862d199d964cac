package healthcheck

// ServiceCheckID binds a check to a service instance. It is the Consul
// registration key and is stable across register and deregister.
func ServiceCheckID(serviceID, checkID string) string {
	return serviceID + ":" + checkID
}

// SensuFileName is the check-definition filename written for a Sensu check.
func SensuFileName(serviceID, checkID string) string {
	return serviceID + "-" + checkID + ".json"
}
