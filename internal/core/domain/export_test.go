package domain

// HostPlatformNameFor exposes hostPlatformName for table-driven tests.
var HostPlatformNameFor = hostPlatformName
