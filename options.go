package listcontainer

import "strings"

type Option int

const (
	// OptionNotifyOnSort makes sorting fire an ItemSetChangeEvent
	// with the change ItemsSorted.
	OptionNotifyOnSort Option = 1 << iota

	// OptionWithoutInference disables the inference of visible
	// property ids from the first item.
	OptionWithoutInference
)

func (o Option) Has(option Option) bool {
	return o&option != 0
}

func (o Option) String() string {
	var b strings.Builder
	if o.Has(OptionNotifyOnSort) {
		b.WriteString("NotifyOnSort")
	}
	if o.Has(OptionWithoutInference) {
		if b.Len() > 0 {
			b.WriteString("|")
		}
		b.WriteString("WithoutInference")
	}
	if b.Len() == 0 {
		return "no Option"
	}
	return b.String()
}

func combineOptions(options []Option) Option {
	var combined Option
	for _, o := range options {
		combined |= o
	}
	return combined
}
