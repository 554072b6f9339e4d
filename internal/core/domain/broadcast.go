package domain

// DefaultBroadcast is the announcement served until an admin replaces it.
const DefaultBroadcast = "Welcome to Cholo Space! All systems nominal."
