package gitlab

// WebhookEvent is the envelope GitLab posts to webhook receivers. Fields not
// present for a given event type are simply left zeroed, so one struct covers
// both note and merge request events.
type WebhookEvent struct {
	EventType        string                  `json:"event_type"`
	Project          WebhookProject          `json:"project"`
	MergeRequest     *WebhookMergeRequest    `json:"merge_request"`
	ObjectAttributes WebhookObjectAttributes `json:"object_attributes"`
}

// WebhookProject identifies the project a webhook event originates from.
type WebhookProject struct {
	ID        ProjectID `json:"id"`
	Namespace string    `json:"namespace"`
}

// WebhookMergeRequest identifies the merge request a note was left on.
type WebhookMergeRequest struct {
	ID  MergeRequestID  `json:"id"`
	IID MergeRequestIID `json:"iid"`
}

// WebhookObjectAttributes carries the event-specific payload.
type WebhookObjectAttributes struct {
	Action       string          `json:"action"`
	IID          MergeRequestIID `json:"iid"`
	AuthorID     UserID          `json:"author_id"`
	Description  string          `json:"description"`
	DiscussionID DiscussionID    `json:"discussion_id"`
}
