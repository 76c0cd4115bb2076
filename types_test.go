package listcontainer

import (
	"fmt"
	"time"
)

type MoreDetail struct {
	Property string
}

type Detail struct {
	Property    string
	MoreDetails []*MoreDetail
}

type Person struct {
	FirstName  string
	LastName   string
	Age        int
	Born       *time.Time
	Detail     *Detail
	DetailList []Detail
	Scores     map[string]int
	Secret     string `prop:"-"`
}

func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

var personPropertyIDs = []string{
	"firstName",
	"lastName",
	"age",
	"born",
	"detail",
	"detailList",
	"scores",
}

func newPersons(n int) []*Person {
	persons := make([]*Person, n)
	for i := range persons {
		persons[i] = &Person{
			FirstName: fmt.Sprintf("Fist%d", i),
			LastName:  fmt.Sprintf("Last%d", i),
			Age:       i,
		}
	}
	return persons
}

type eventRecorder[T comparable] struct {
	itemSetEvents     []ItemSetChangeEvent[T]
	propertySetEvents []PropertySetChangeEvent[T]
}

func recordEvents[T comparable](c *Container[T]) *eventRecorder[T] {
	r := new(eventRecorder[T])
	c.AddItemSetChangeListener(func(e ItemSetChangeEvent[T]) {
		r.itemSetEvents = append(r.itemSetEvents, e)
	})
	c.AddPropertySetChangeListener(func(e PropertySetChangeEvent[T]) {
		r.propertySetEvents = append(r.propertySetEvents, e)
	})
	return r
}

func (r *eventRecorder[T]) reset() {
	r.itemSetEvents = nil
	r.propertySetEvents = nil
}
