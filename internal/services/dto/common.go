package dto

// Pages считает число страниц для пагинации
func Pages(total int64, pageSize int) int {
	if pageSize <= 0 || total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// UserSummary - публичная проекция пользователя
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
