package models

// GuestUsage is the single global ledger document shared by all
// anonymous visitors. Both counters only ever grow; there is no
// decrement or reset operation.
type GuestUsage struct {
	ID                  string `bson:"_id" json:"id"`
	Uploads             int64  `bson:"uploads" json:"uploads"`
	ChatbotInteractions int64  `bson:"chatbot_interactions" json:"chatbot_interactions"`
}
