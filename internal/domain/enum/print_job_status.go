package enum

import "encoding/json"

// PrintJobStatus tracks the lifecycle of an asynchronous print job.
type PrintJobStatus int

const (
	PrintJobIdle       PrintJobStatus = 0
	PrintJobInProgress PrintJobStatus = 1
	PrintJobCompleted  PrintJobStatus = 2
	PrintJobFailed     PrintJobStatus = 3
)

func (s PrintJobStatus) String() string {
	names := [...]string{"Idle", "InProgress", "Completed", "Failed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Idle"
	}
	return names[s]
}

func (s PrintJobStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PrintJobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PrintJobStatus(i)
		return nil
	}
	switch str {
	case "Idle":
		*s = PrintJobIdle
	case "InProgress":
		*s = PrintJobInProgress
	case "Completed":
		*s = PrintJobCompleted
	case "Failed":
		*s = PrintJobFailed
	}
	return nil
}
