package event

import (
	util "github.com/saulo-duarte/organon/internal/utils"
)

type CreateEventDTO struct {
	Name        string            `json:"name"`
	Date        util.Date         `json:"date"`
	StartTime   string            `json:"startTime"`
	EndTime     string            `json:"endTime"`
	Color       string            `json:"color"`
	Location    string            `json:"location"`
	Recurrence  string            `json:"recurrence"`
	Attachments []util.Attachment `json:"attachments"`
}

type UpdateEventDTO struct {
	Name        *string            `json:"name"`
	Date        *util.Date         `json:"date"`
	StartTime   *string            `json:"startTime"`
	EndTime     *string            `json:"endTime"`
	Color       *string            `json:"color"`
	Location    *string            `json:"location"`
	Recurrence  *string            `json:"recurrence"`
	Attachments *[]util.Attachment `json:"attachments"`
}
