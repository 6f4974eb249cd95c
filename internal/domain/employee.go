package domain

// EmployeeProfile 是员工文档中嵌套的 employee 字段
// 接受班次时整个 profile 会被并入班次的 accepted_users 集合
type EmployeeProfile struct {
	UUID        string `firestore:"uuid" json:"uuid"`
	FullName    string `firestore:"fullName" json:"fullName"`
	PhoneNumber string `firestore:"phoneNumber" json:"phoneNumber"`
	Role        string `firestore:"role" json:"role"`
	Email       string `firestore:"email" json:"email"`
}

type SavingsGoal struct {
	GoalName             string `firestore:"goalName" json:"goalName"`
	TargetAmountDollars  int    `firestore:"targetAmountDollars" json:"targetAmountDollars"`
	CurrentAmountDollars int    `firestore:"currentAmountDollars" json:"currentAmountDollars"`
}

// Employee 对应 EmployeeData 集合中的一个文档，文档 ID 与 Profile.UUID 相同
// Profile 以外的字段是排序提示词的上下文，用来衡量候选人接受班次的可能性
type Employee struct {
	ID                         string          `firestore:"-" json:"-"`
	Profile                    EmployeeProfile `firestore:"employee" json:"employee"`
	SavingsGoals               []SavingsGoal   `firestore:"savingsGoals" json:"savingsGoals"`
	DailyPayAvailableBalance   float64         `firestore:"dailyPayAvailableBalance" json:"dailyPayAvailableBalance"`
	AdvancesWithinPast30Days   int             `firestore:"advancesWithinPast30Days" json:"advancesWithinPast30Days"`
	DaysSinceLastAdvance       int             `firestore:"daysSinceLastAdvance" json:"daysSinceLastAdvance"`
	AverageAdvanceAmount       float64         `firestore:"averageAdvanceAmount" json:"averageAdvanceAmount"`
	OpportunityAcceptanceRatio float64         `firestore:"opportunityAcceptanceRatio" json:"opportunityAcceptanceRatio"`
	HoursWorkedWithinPastWeek  int             `firestore:"hoursWorkedWithinPastWeek" json:"hoursWorkedWithinPastWeek"`
	CurrentLocationInMilesAway int             `firestore:"currentLocationInMilesAway" json:"currentLocationInMilesAway"`
}
