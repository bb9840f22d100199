package models

import "time"

// Sitios of the barangay, offered as the fixed choice list on logbook forms.
var Sitios = []string{"Asana 1", "Asana 2", "Dao", "Ipil", "Maulawin", "Kamagong", "Yakal"}

type LogbookEntry struct {
	ID         int       `json:"id"`
	FirstName  string    `json:"first_name"`
	MiddleName string    `json:"middle_name"`
	LastName   string    `json:"last_name"`
	Sitio      string    `json:"sitio"`
	TimeIn     *string   `json:"time_in"`
	TimeOut    *string   `json:"time_out"`
	Date       time.Time `json:"date"`
	Concern    string    `json:"concern"`
}
