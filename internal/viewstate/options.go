package viewstate

import "fmt"

type GroupBy string

const (
	GroupNone     GroupBy = "none"
	GroupStatus   GroupBy = "status"
	GroupPriority GroupBy = "priority"
	GroupAssignee GroupBy = "assignee"
)

func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(s); g {
	case GroupNone, GroupStatus, GroupPriority, GroupAssignee:
		return g, nil
	}
	return "", fmt.Errorf("unknown group-by %q", s)
}

type Swimlane string

const (
	SwimlaneNone     Swimlane = "none"
	SwimlanePriority Swimlane = "priority"
	SwimlaneAssignee Swimlane = "assignee"
)

func ParseSwimlane(s string) (Swimlane, error) {
	switch l := Swimlane(s); l {
	case SwimlaneNone, SwimlanePriority, SwimlaneAssignee:
		return l, nil
	}
	return "", fmt.Errorf("unknown swimlane %q", s)
}

type SortField string

const (
	SortManual   SortField = "manual"
	SortTitle    SortField = "title"
	SortPriority SortField = "priority"
	SortDueDate  SortField = "dueDate"
	SortCreated  SortField = "created"
	SortUpdated  SortField = "updated"
)

func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortManual, SortTitle, SortPriority, SortDueDate, SortCreated, SortUpdated:
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

type Scale string

const (
	ScaleWeek    Scale = "week"
	ScaleMonth   Scale = "month"
	ScaleQuarter Scale = "quarter"
	ScaleYear    Scale = "year"
)

func ParseScale(s string) (Scale, error) {
	switch sc := Scale(s); sc {
	case ScaleWeek, ScaleMonth, ScaleQuarter, ScaleYear:
		return sc, nil
	}
	return "", fmt.Errorf("unknown timeline scale %q", s)
}

// Field names a toggleable column of the list view.
type Field string

const (
	FieldStatus    Field = "status"
	FieldPriority  Field = "priority"
	FieldAssignee  Field = "assignee"
	FieldDueDate   Field = "due_date"
	FieldStartDate Field = "start_date"
	FieldLabels    Field = "labels"
	FieldCreated   Field = "created"
	FieldUpdated   Field = "updated"
)

// AllFields in display order.
var AllFields = []Field{FieldStatus, FieldPriority, FieldAssignee, FieldDueDate, FieldStartDate, FieldLabels, FieldCreated, FieldUpdated}

func defaultFields() map[Field]bool {
	return map[Field]bool{
		FieldStatus:    true,
		FieldPriority:  true,
		FieldAssignee:  true,
		FieldDueDate:   true,
		FieldLabels:    true,
		FieldStartDate: false,
		FieldCreated:   false,
		FieldUpdated:   false,
	}
}

// UnassignedFilter is the assignee-filter value matching tasks without an assignee.
const UnassignedFilter = "unassigned"

// Table names used for pagination.
const (
	TableTasks   = "tasks"
	TableFiles   = "files"
	TableMembers = "members"
)

// Tab is a project detail page.
type Tab string

const (
	TabList     Tab = "list"
	TabBoard    Tab = "board"
	TabRoadmap  Tab = "roadmap"
	TabInsights Tab = "insights"
	TabFiles    Tab = "files"
	TabMembers  Tab = "members"
)

var AllTabs = []Tab{TabList, TabBoard, TabRoadmap, TabInsights, TabFiles, TabMembers}

func ParseTab(s string) (Tab, error) {
	for _, t := range AllTabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}
