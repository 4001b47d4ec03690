package models

// BuiltinTrainings is the stretching catalog shipped with the app. These
// definitions are not synced; only user-authored trainings and completed
// history travel through the cloud document.
var BuiltinTrainings = []Training{
	{
		ID:          "1",
		Name:        "Morning Stretch",
		Description: "Perfect way to start your day with gentle stretches",
		Exercises: []Exercise{
			{ID: "1-1", Name: "Neck Stretch", Description: "Gently tilt your head to the right, hold for 30 seconds, then repeat on the left side.", DefaultDuration: 30},
			{ID: "1-2", Name: "Shoulder Roll", Description: "Roll your shoulders backward in a circular motion 10 times, then forward 10 times.", DefaultDuration: 30},
			{ID: "1-3", Name: "Arm Circles", Description: "Extend your arms to the sides and make small circles, gradually increasing the size.", DefaultDuration: 30},
			{ID: "1-4", Name: "Forward Fold", Description: "Stand with feet hip-width apart, slowly bend forward and reach toward your toes.", DefaultDuration: 30},
		},
	},
	{
		ID:          "2",
		Name:        "Full Body Flexibility",
		Description: "Comprehensive stretching routine for entire body",
		Exercises: []Exercise{
			{ID: "2-1", Name: "Cat-Cow Stretch", Description: "Start on hands and knees, arch your back up (cat), then drop it down (cow).", DefaultDuration: 30},
			{ID: "2-2", Name: "Hip Flexor Stretch", Description: "Step forward into a lunge position, keeping your back leg straight.", DefaultDuration: 30},
			{ID: "2-3", Name: "Hamstring Stretch", Description: "Sit on the floor with one leg extended, reach forward toward your toes.", DefaultDuration: 30},
			{ID: "2-4", Name: "Quad Stretch", Description: "Stand on one leg, pull your other heel toward your glutes.", DefaultDuration: 30},
		},
	},
}

// FindBuiltinTraining looks a catalog entry up by id.
func FindBuiltinTraining(id string) (Training, bool) {
	for _, t := range BuiltinTrainings {
		if t.ID == id {
			return t, true
		}
	}
	return Training{}, false
}
