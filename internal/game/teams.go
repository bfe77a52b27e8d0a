package game

// teamPalette is cycled when teams are added.
var teamPalette = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#ec4899"}

// ToggleTeamsMode flips between individual and team scoring. Enabling seeds
// two default teams; disabling clears the team list. Seat team assignments
// are left as they are.
func (r *Room) ToggleTeamsMode() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return false, ErrRoomClosed
	}

	r.teamsEnabled = !r.teamsEnabled
	if r.teamsEnabled {
		r.teams = []Team{
			{Name: "Team A", Color: teamPalette[0]},
			{Name: "Team B", Color: teamPalette[1]},
		}
	} else {
		r.teams = nil
	}

	r.commit("teams_mode", Changes{
		TeamsEnabled: boolPtr(r.teamsEnabled),
		Teams:        r.teamsCopy(),
	})
	return r.teamsEnabled, nil
}

// AddTeam appends a team with the next palette color and a zero score.
func (r *Room) AddTeam(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}
	if name == "" {
		return ErrEmptyTeamName
	}

	color := teamPalette[len(r.teams)%len(teamPalette)]
	r.teams = append(r.teams, Team{Name: name, Color: color})

	r.commit("team_added", Changes{Teams: r.teamsCopy()})
	return nil
}

// RemoveTeam drops the team at index. Players assigned to it keep the stale
// assignment; a later correct judgement for them simply awards nothing.
func (r *Room) RemoveTeam(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}
	if index < 0 || index >= len(r.teams) {
		return ErrTeamNotFound
	}

	r.teams = append(r.teams[:index], r.teams[index+1:]...)

	r.commit("team_removed", Changes{Teams: r.teamsCopy()})
	return nil
}

func (r *Room) teamIndexLocked(name string) int {
	for i, t := range r.teams {
		if t.Name == name {
			return i
		}
	}
	return -1
}

func (r *Room) teamsCopy() *[]Team {
	t := append([]Team{}, r.teams...)
	return &t
}
