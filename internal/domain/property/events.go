package property

import "time"

type Created struct {
	PropertyID ID
	Name       string
	At         time.Time
}

func (e Created) EventName() string     { return "property.created" }
func (e Created) AggregateID() string   { return string(e.PropertyID) }
func (e Created) OccurredAt() time.Time { return e.At }

type Updated struct {
	PropertyID ID
	At         time.Time
}

func (e Updated) EventName() string     { return "property.updated" }
func (e Updated) AggregateID() string   { return string(e.PropertyID) }
func (e Updated) OccurredAt() time.Time { return e.At }

type Deleted struct {
	PropertyID ID
	At         time.Time
}

func (e Deleted) EventName() string     { return "property.deleted" }
func (e Deleted) AggregateID() string   { return string(e.PropertyID) }
func (e Deleted) OccurredAt() time.Time { return e.At }
