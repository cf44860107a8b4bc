package models

// AnalyticsData is the summary derived from the complaint collection.
// It is recomputed on demand and never stored.
type AnalyticsData struct {
	TotalComplaints    int              `json:"totalComplaints"`
	ResolvedComplaints int              `json:"resolvedComplaints"`
	PendingComplaints  int              `json:"pendingComplaints"`
	AvgResolutionTime  float64          `json:"avgResolutionTime"` // days, one decimal
	DepartmentStats    []DepartmentStat `json:"departmentStats"`
	AreaStats          []AreaStat       `json:"areaStats"`
	TrendsData         []TrendPoint     `json:"trendsData"`
}

// DepartmentStat counts complaints for a single department.
type DepartmentStat struct {
	DepartmentID   string `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	Count          int    `json:"count"`
	Resolved       int    `json:"resolved"`
	Pending        int    `json:"pending"`
}

// AreaStat counts complaints raised in an area.
type AreaStat struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

// TrendPoint is one calendar day of the trend series.
type TrendPoint struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Complaints int    `json:"complaints"`
	Resolved   int    `json:"resolved"`
}

// Dashboard is the landing page summary.
type Dashboard struct {
	Recent          []Complaint         `json:"recent"`
	Urgent          []Complaint         `json:"urgent"`
	TopDepartments  []DepartmentSummary `json:"topDepartments"`
	TopAreas        []AreaStat          `json:"topAreas"`
	TotalComplaints int                 `json:"totalComplaints"`
	Resolved        int                 `json:"resolved"`
	Pending         int                 `json:"pending"`
}

// DepartmentSummary is a department name with its complaint count.
type DepartmentSummary struct {
	DepartmentID string `json:"departmentId"`
	Name         string `json:"name"`
	Complaints   int    `json:"complaints"`
}

// UserSummary is a citizen's own complaint history.
type UserSummary struct {
	Complaints   []Complaint `json:"complaints"`
	Total        int         `json:"total"`
	Resolved     int         `json:"resolved"`
	Pending      int         `json:"pending"`
	TotalUpvotes int         `json:"totalUpvotes"`
}
