package dto

import "time"

// AdminDashboardResponse is the admin overview snapshot.
type AdminDashboardResponse struct {
	TotalCustomers      int64 `json:"total_customers"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
	PendingRequests     int64 `json:"pending_requests"`
	// TotalRevenue sums the pack prices of ACTIVE subscriptions.
	TotalRevenue     string               `json:"total_revenue"`
	RecentActivities []*RecentActivityDTO `json:"recent_activities"`
}

// RecentActivityDTO describes the latest state change of one subscription.
type RecentActivityDTO struct {
	Type           string    `json:"type"`
	SubscriptionID string    `json:"subscription_id"`
	Customer       string    `json:"customer"`
	Pack           string    `json:"pack"`
	Timestamp      time.Time `json:"timestamp"`
}
