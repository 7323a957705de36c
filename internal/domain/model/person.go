// Package model contains domain models passed between layers.
package model

import "fmt"

// Person holds the identity shared by employees and visitors.
type Person struct {
	ID   string // park-wide person identifier
	Name string
	Age  int
}

func (p Person) String() string {
	return fmt.Sprintf("Person{id='%s', name='%s', age=%d}", p.ID, p.Name, p.Age)
}

// Employee is a park staff member. A ride needs one as its operator.
type Employee struct {
	Person
	EmployeeID string // HR identifier, distinct from Person.ID
	Position   string // e.g. "Roller Coaster Operator"
}

// NewEmployee builds an Employee value.
func NewEmployee(id, name string, age int, employeeID, position string) Employee {
	return Employee{
		Person:     Person{ID: id, Name: name, Age: age},
		EmployeeID: employeeID,
		Position:   position,
	}
}

func (e Employee) String() string {
	return fmt.Sprintf("Employee{%s, employeeId='%s', position='%s'}", e.Person, e.EmployeeID, e.Position)
}

// VisitorRecord is a ticketed park visitor as seen by a ride.
// MembershipType is informational only; queues stay FIFO regardless.
type VisitorRecord struct {
	Person
	VisitorID      string // ticketing identifier, used for history lookups
	MembershipType string // e.g. "Standard", "VIP"
}

// NewVisitor builds a VisitorRecord value.
func NewVisitor(id, name string, age int, visitorID, membershipType string) VisitorRecord {
	return VisitorRecord{
		Person:         Person{ID: id, Name: name, Age: age},
		VisitorID:      visitorID,
		MembershipType: membershipType,
	}
}

func (v VisitorRecord) String() string {
	return fmt.Sprintf("Visitor{%s, visitorId='%s', membershipType='%s'}", v.Person, v.VisitorID, v.MembershipType)
}
