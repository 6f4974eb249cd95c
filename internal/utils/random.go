package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/mozillazg/go-pinyin"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

var roles = []string{
	"Cashier",
	"Retail Associate",
	"Food Service Worker",
	"Delivery Driver",
	"Receptionist",
	"Cleaner",
	"Warehouse Worker",
	"Telemarketer",
	"Housekeeper",
	"Customer Service Representative",
}

var goalNames = []string{
	"Emergency Fund",
	"Education",
	"Vacation",
	"Home Down Payment",
	"Retirement",
	"Medical Expenses",
	"Debt Repayment",
	"New Car",
	"Wedding Fund",
	"Family Support",
	"Investment",
	"Gadget Purchase",
	"Pet Care",
	"Self-Development",
	"Career Advancement",
	"Relocation",
	"Charity Donation",
	"Business Startup",
	"Travel",
	"Vehicle Maintenance",
}

var digits = "0123456789"

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

// GenerateEmailFromChineseName 用姓名的拼音加上几位数字拼出邮箱地址
func GenerateEmailFromChineseName(chineseName string, emailDomainName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	local := ""

	for _, p := range pinyinArray {
		local += p
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}

	return local + "@" + emailDomainName
}

func GenerateRandomPhoneNumber() string {
	return fmt.Sprintf("+1-555-%06d", rand.Intn(900000)+100000)
}

func GenerateRandomSavingsGoals() []domain.SavingsGoal {
	goals := make([]domain.SavingsGoal, rand.Intn(4)+1)
	for i := range goals {
		target := rand.Intn(9000) + 1000
		goals[i] = domain.SavingsGoal{
			GoalName:             goalNames[rand.Intn(len(goalNames))],
			TargetAmountDollars:  target,
			CurrentAmountDollars: rand.Intn(target),
		}
	}
	return goals
}

func randomFloat(min float64, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

func GenerateRandomEmployee(emailDomainName string) *domain.Employee {
	fullName := GenerateRandomChineseName()
	id := uuid.NewString()

	return &domain.Employee{
		ID: id,
		Profile: domain.EmployeeProfile{
			UUID:        id,
			FullName:    fullName,
			PhoneNumber: GenerateRandomPhoneNumber(),
			Role:        roles[rand.Intn(len(roles))],
			Email:       GenerateEmailFromChineseName(fullName, emailDomainName),
		},
		SavingsGoals:               GenerateRandomSavingsGoals(),
		DailyPayAvailableBalance:   randomFloat(50, 200),
		AdvancesWithinPast30Days:   rand.Intn(6),
		DaysSinceLastAdvance:       rand.Intn(30),
		AverageAdvanceAmount:       randomFloat(100, 200),
		OpportunityAcceptanceRatio: randomFloat(0.3, 0.5),
		HoursWorkedWithinPastWeek:  rand.Intn(10) + 10,
		CurrentLocationInMilesAway: rand.Intn(29) + 1,
	}
}

var shiftDescriptions = []string{
	"Cover evening shift",
	"Weekend morning rush",
	"Holiday coverage needed",
	"Last-minute replacement",
	"Inventory day support",
}

func GenerateRandomShift() *domain.Shift {
	start := time.Now().Add(time.Duration(rand.Intn(72)+1) * time.Hour).Truncate(time.Hour)
	return &domain.Shift{
		StartTime:   start,
		EndTime:     start.Add(time.Duration(rand.Intn(6)+2) * time.Hour),
		Description: shiftDescriptions[rand.Intn(len(shiftDescriptions))],
		Status:      domain.ShiftStatusOpen,
	}
}
