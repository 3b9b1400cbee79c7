package installer

func NewChannelStep() Step {
	return &ChoiceStep{
		prompt: "Where do you want to chat with CalBot?",
		key:    envChannel,
		choices: []choice{
			{"Terminal (CLI)", "cli"},
			{"Telegram", "telegram"},
			{"Both", "both"},
		},
	}
}

func NewCalendarStep() Step {
	return &ChoiceStep{
		prompt: "Where should events and tasks be stored?",
		key:    envCalendarBackend,
		choices: []choice{
			{"Local database", "local"},
			{"Google Calendar and Tasks", "google"},
		},
	}
}
