package propertypath

import (
	"errors"
	"strings"
	"time"
)

type moreDetail struct {
	Property string
}

type detail struct {
	Property    string
	MoreDetails []*moreDetail
}

type Address struct {
	Street string
	City   string `prop:"town"`
}

type person struct {
	FirstName       string
	LastName        string
	Age             int
	Born            time.Time
	Secret          string `prop:"-"`
	Detail          *detail
	DetailList      []detail
	Numbers         [3]int
	StringToInteger map[string]int
	IntToString     map[int]string
	Tags            []string
	Extra           any
	Address
	hidden string

	nickname string
}

func (p *person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *person) Nickname() string { return p.nickname }

func (p *person) SetNickname(nickname string) error {
	if nickname == "" {
		return errors.New("empty nickname")
	}
	p.nickname = nickname
	return nil
}

func (p *person) Checked() (bool, error) {
	if p.Age < 0 {
		return false, errors.New("negative age")
	}
	return p.Age >= 18, nil
}

func newPerson() *person {
	return &person{
		FirstName: "Erik",
		LastName:  "Unger",
		Age:       42,
		Detail:    &detail{Property: "direct"},
		DetailList: []detail{
			{Property: "first"},
			{
				Property: "second",
				MoreDetails: []*moreDetail{
					{Property: "nested"},
					nil,
				},
			},
		},
		Numbers:         [3]int{1, 2, 3},
		StringToInteger: map[string]int{"id": 7},
		IntToString:     map[int]string{1: "one"},
		Address:         Address{Street: "Main", City: "Vienna"},
		nickname:        "ungerik",
	}
}
