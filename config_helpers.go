package main

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
