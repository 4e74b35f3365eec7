package services

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kitchen-api/models"
	"kitchen-api/utils/apperr"
	"kitchen-api/utils/dates"
)

// AggregationService builds the derived read models over the order
// items of one local calendar day: what to cook, what to bag per
// customer, and who still owes money.
//
// Grouping keys are derived from modifier option IDs, never display
// names, so two distinct options that happen to share a name do not
// collapse into one row. Grouping runs in Go because the key (sorted
// option-ID set) and the local-day bucket are not expressible as a
// portable SQL GROUP BY.
type AggregationService struct {
	db  *gorm.DB
	log *zap.Logger
	loc *time.Location
}

func NewAggregationService(db *gorm.DB, log *zap.Logger, loc *time.Location) *AggregationService {
	return &AggregationService{db: db, log: log, loc: loc}
}

type CookingRow struct {
	MenuItemID  string   `json:"menu_item_id"`
	ItemName    string   `json:"item_name"`
	OptionNames []string `json:"option_names"`
	Quantity    int      `json:"quantity"`
}

type BaggingLine struct {
	ItemName    string   `json:"item_name"`
	OptionNames []string `json:"option_names"`
	Quantity    int      `json:"quantity"`
	AllBagged   bool     `json:"all_bagged"`
}

type PersonBagging struct {
	UserID      string        `json:"user_id"`
	DisplayName string        `json:"display_name"`
	AllBagged   bool          `json:"all_bagged"`
	SomeBagged  bool          `json:"some_bagged"`
	Lines       []BaggingLine `json:"lines"`
}

type PaymentRow struct {
	OrderID      string    `json:"order_id"`
	DisplayName  string    `json:"display_name"`
	Total        int64     `json:"total"`
	CentsPaid    int64     `json:"cents_paid"`
	AmountOwed   int64     `json:"amount_owed"`
	IsPaidInFull bool      `json:"is_paid_in_full"`
	CreatedAt    time.Time `json:"created_at"`
}

// dayOrderItems loads every order item whose menu entry falls on the
// given local day, with the frozen graph attached.
func (s *AggregationService) dayOrderItems(day string) ([]models.OrderItem, error) {
	date, err := dates.ParseDay(day, s.loc)
	if err != nil {
		return nil, apperr.ValidationField("date", "invalid date %q", day)
	}
	start, end := dates.DayBounds(date, s.loc)

	entrySub := s.db.Model(&models.MenuEntry{}).Select("id").
		Where("date >= ? AND date < ?", start, end)

	var items []models.OrderItem
	err = s.db.Where("menu_entry_id IN (?)", entrySub).
		Preload("Modifiers.ModifierOption").
		Preload("MenuEntry.MenuItem").
		Preload("Order.User").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Internalf(err, "failed to load order items")
	}
	return items, nil
}

// comboKey is the cooking/bagging grouping key: item ID plus the sorted
// set of selected option IDs.
func comboKey(item *models.OrderItem) string {
	optIDs := make([]string, 0, len(item.Modifiers))
	for _, mod := range item.Modifiers {
		optIDs = append(optIDs, mod.ModifierOptionID)
	}
	sort.Strings(optIDs)
	return item.MenuEntry.MenuItemID + "|" + strings.Join(optIDs, ";")
}

// optionNames lists the display names of a line's selections, ordered
// by option ID to match the grouping key.
func optionNames(item *models.OrderItem) []string {
	mods := make([]models.OrderItemModifier, len(item.Modifiers))
	copy(mods, item.Modifiers)
	sort.Slice(mods, func(i, j int) bool {
		return mods[i].ModifierOptionID < mods[j].ModifierOptionID
	})
	names := make([]string, 0, len(mods))
	for _, mod := range mods {
		names = append(names, mod.ModifierOption.Name)
	}
	return names
}

// GetCookingView sums quantities per distinct (item, modifier
// combination) across all customers.
func (s *AggregationService) GetCookingView(day string) ([]CookingRow, error) {
	items, err := s.dayOrderItems(day)
	if err != nil {
		return nil, err
	}

	rowByKey := make(map[string]*CookingRow)
	keys := make([]string, 0)
	for i := range items {
		key := comboKey(&items[i])
		row, ok := rowByKey[key]
		if !ok {
			row = &CookingRow{
				MenuItemID:  items[i].MenuEntry.MenuItemID,
				ItemName:    items[i].MenuEntry.MenuItem.Name,
				OptionNames: optionNames(&items[i]),
			}
			rowByKey[key] = row
			keys = append(keys, key)
		}
		row.Quantity += items[i].Quantity
	}

	rows := make([]CookingRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, *rowByKey[key])
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ItemName != rows[j].ItemName {
			return rows[i].ItemName < rows[j].ItemName
		}
		return strings.Join(rows[i].OptionNames, ";") < strings.Join(rows[j].OptionNames, ";")
	})
	return rows, nil
}

// GetBaggingView groups the day's items per customer, then per (item,
// modifier combination). A merged line is fully bagged only when every
// contributing order item is bagged.
func (s *AggregationService) GetBaggingView(day string) ([]PersonBagging, error) {
	items, err := s.dayOrderItems(day)
	if err != nil {
		return nil, err
	}

	type lineAgg struct {
		line      BaggingLine
		allBagged bool
		anyBagged bool
	}
	type personAgg struct {
		user     models.User
		lines    map[string]*lineAgg
		lineKeys []string
	}

	persons := make(map[string]*personAgg)
	userIDs := make([]string, 0)
	for i := range items {
		user := items[i].Order.User
		p, ok := persons[user.ID]
		if !ok {
			p = &personAgg{user: user, lines: make(map[string]*lineAgg)}
			persons[user.ID] = p
			userIDs = append(userIDs, user.ID)
		}
		key := comboKey(&items[i])
		l, ok := p.lines[key]
		if !ok {
			l = &lineAgg{
				line: BaggingLine{
					ItemName:    items[i].MenuEntry.MenuItem.Name,
					OptionNames: optionNames(&items[i]),
				},
				allBagged: true,
			}
			p.lines[key] = l
			p.lineKeys = append(p.lineKeys, key)
		}
		l.line.Quantity += items[i].Quantity
		if items[i].BaggedAt == nil {
			l.allBagged = false
		} else {
			l.anyBagged = true
		}
	}

	users := make([]models.User, 0, len(userIDs))
	for _, id := range userIDs {
		users = append(users, persons[id].user)
	}
	displayNames := disambiguateNames(users)

	result := make([]PersonBagging, 0, len(userIDs))
	for _, userID := range userIDs {
		p := persons[userID]
		person := PersonBagging{
			UserID:      userID,
			DisplayName: displayNames[userID],
			AllBagged:   true,
		}
		for _, key := range p.lineKeys {
			l := p.lines[key]
			l.line.AllBagged = l.allBagged
			person.Lines = append(person.Lines, l.line)
			if l.anyBagged {
				person.SomeBagged = true
			}
			if !l.allBagged {
				person.AllBagged = false
			}
		}
		sort.Slice(person.Lines, func(i, j int) bool {
			return person.Lines[i].ItemName < person.Lines[j].ItemName
		})
		result = append(result, person)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DisplayName < result[j].DisplayName
	})
	return result, nil
}

// GetPaymentView lists one row per order with items on the day, with
// what is still owed. Unpaid orders come first, then newest first.
func (s *AggregationService) GetPaymentView(day string) ([]PaymentRow, error) {
	items, err := s.dayOrderItems(day)
	if err != nil {
		return nil, err
	}

	orderByID := make(map[string]*models.Order)
	orderIDs := make([]string, 0)
	for i := range items {
		if _, ok := orderByID[items[i].OrderID]; !ok {
			order := items[i].Order
			orderByID[items[i].OrderID] = &order
			orderIDs = append(orderIDs, items[i].OrderID)
		}
	}

	users := make([]models.User, 0, len(orderIDs))
	seenUser := make(map[string]bool)
	for _, id := range orderIDs {
		u := orderByID[id].User
		if !seenUser[u.ID] {
			seenUser[u.ID] = true
			users = append(users, u)
		}
	}
	displayNames := disambiguateNames(users)

	rows := make([]PaymentRow, 0, len(orderIDs))
	for _, id := range orderIDs {
		order := orderByID[id]
		rows = append(rows, PaymentRow{
			OrderID:      order.ID,
			DisplayName:  displayNames[order.UserID],
			Total:        order.Total,
			CentsPaid:    order.CentsPaid,
			AmountOwed:   order.Total - order.CentsPaid,
			IsPaidInFull: order.CentsPaid >= order.Total,
			CreatedAt:    order.CreatedAt,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].IsPaidInFull != rows[j].IsPaidInFull {
			return !rows[i].IsPaidInFull
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

// MarkPersonBagged bags every unbagged order item of one user on one
// day in a single batch update.
func (s *AggregationService) MarkPersonBagged(userID, day string) error {
	return s.setPersonBagged(userID, day, true)
}

// UnmarkPersonBagged clears the bagged flag on all of the user's
// bagged items for the day.
func (s *AggregationService) UnmarkPersonBagged(userID, day string) error {
	return s.setPersonBagged(userID, day, false)
}

func (s *AggregationService) setPersonBagged(userID, day string, bagged bool) error {
	date, err := dates.ParseDay(day, s.loc)
	if err != nil {
		return apperr.ValidationField("date", "invalid date %q", day)
	}
	start, end := dates.DayBounds(date, s.loc)

	entrySub := s.db.Model(&models.MenuEntry{}).Select("id").
		Where("date >= ? AND date < ?", start, end)
	orderSub := s.db.Model(&models.Order{}).Select("id").
		Where("user_id = ?", userID)

	query := s.db.Model(&models.OrderItem{}).
		Where("order_id IN (?)", orderSub).
		Where("menu_entry_id IN (?)", entrySub)

	var res *gorm.DB
	if bagged {
		res = query.Where("bagged_at IS NULL").Update("bagged_at", time.Now())
	} else {
		res = query.Where("bagged_at IS NOT NULL").Update("bagged_at", nil)
	}
	if res.Error != nil {
		return apperr.Internalf(res.Error, "failed to update bagging state")
	}

	s.log.Info("bagging state updated",
		zap.String("user_id", userID),
		zap.String("date", day),
		zap.Bool("bagged", bagged),
		zap.Int64("items", res.RowsAffected))
	return nil
}

// disambiguateNames appends the last four phone digits to display names
// shared by more than one user.
func disambiguateNames(users []models.User) map[string]string {
	nameCount := make(map[string]int, len(users))
	for _, u := range users {
		nameCount[u.Name]++
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		name := u.Name
		if nameCount[u.Name] > 1 {
			digits := u.PhoneNumber
			if len(digits) > 4 {
				digits = digits[len(digits)-4:]
			}
			name = name + " (" + digits + ")"
		}
		names[u.ID] = name
	}
	return names
}
