package game

// ChooseDirection picks the opponent's next move: the safe direction whose
// next cell is closest to the food. Safety only covers the snake's own body,
// obstacles and the border ring; the other snake is not avoided.
// When nothing is safe the buffered direction is kept.
func ChooseDirection(grid Grid, snake Snake, food Point, obstacles []Point) Direction {
	if len(snake.Body) == 0 {
		return snake.Pending
	}

	head := snake.Head()
	bestDir := snake.Pending
	bestDist := -1

	for _, dir := range Directions {
		// Prevent 180-degree turns
		if dir.IsReverse(snake.Dir) {
			continue
		}

		nextPos := grid.Step(head, dir)
		if !isSafe(grid, nextPos, snake.Body, obstacles) {
			continue
		}

		// Strict comparison keeps the earliest direction on ties
		dist := Manhattan(nextPos, food)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestDir = dir
		}
	}

	return bestDir
}

// isSafe checks if a position is not a wall, own body segment or obstacle
func isSafe(grid Grid, p Point, body []Point, obstacles []Point) bool {
	if grid.IsBorder(p) {
		return false
	}
	if containsPoint(body, p) {
		return false
	}
	return !containsPoint(obstacles, p)
}
