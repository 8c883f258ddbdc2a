package dto

// PublishEmbedPolicyMessage is the re-embed queue payload for one policy.
type PublishEmbedPolicyMessage struct {
	PolicyId string `json:"policy_id"`
}
