package dto

type AdminUserListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Role   string `query:"role"`
}

type AdminSystemStats struct {
	TotalUsers    int                  `json:"total_users"`
	TotalRenewals int                  `json:"total_renewals"`
	Renewals      RenewalStatsResponse `json:"renewals"`
}

type AdminLogsRequest struct {
	Level string `query:"level"`
	Limit int    `query:"limit"`
}
