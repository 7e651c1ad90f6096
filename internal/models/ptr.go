package models

// Int returns a pointer to v
func Int(v int) *int { return &v }

// String returns a pointer to s
func String(s string) *string { return &s }

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
