package gitlab

// User is a GitLab user as returned by /users/{id}.
type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
}

// Namespace is a GitLab namespace as returned by /namespaces/{path}.
type Namespace struct {
	ID       NamespaceID `json:"id"`
	Name     string      `json:"name"`
	FullPath string      `json:"full_path"`
}

// Project is a GitLab project as returned by /projects/{id_or_path}.
type Project struct {
	ID        ProjectID `json:"id"`
	Namespace Namespace `json:"namespace"`
}

// MergeRequest is a GitLab merge request.
type MergeRequest struct {
	ID        MergeRequestID  `json:"id"`
	IID       MergeRequestIID `json:"iid"`
	ProjectID ProjectID       `json:"project_id"`
	State     string          `json:"state"`
	WebURL    string          `json:"web_url"`
}
