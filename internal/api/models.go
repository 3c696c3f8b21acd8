package api

// QueryRequest is the request body for /query and /agent/{name}.
type QueryRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

// DefaultUserID is applied when a request carries no user_id.
const DefaultUserID = "default_user"

// AgentReply is the response body both query endpoints produce, whether the
// model call succeeded or was flattened into apology text.
type AgentReply struct {
	AgentName string `json:"agent_name"`
	Response  string `json:"response"`
	Status    string `json:"status"`
}

// AgentSummary is one entry of the /agents listing.
type AgentSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AgentListResponse is the /agents response body.
type AgentListResponse struct {
	Agents []AgentSummary `json:"agents"`
}

// InfoResponse is the GET / response body.
type InfoResponse struct {
	Status          string   `json:"status"`
	Service         string   `json:"service"`
	Version         string   `json:"version"`
	Message         string   `json:"message"`
	AvailableAgents []string `json:"available_agents"`
}
