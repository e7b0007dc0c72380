package bc

import "sync"

// ForEachRow calls fn for every block row in [0, rows) using up to threads
// workers. Rows are handed out through a channel so uneven rows balance.
func ForEachRow(rows, threads int, fn func(row int) error) error {
	if threads < 1 {
		threads = 1
	}
	if threads > rows {
		threads = rows
	}
	if threads <= 1 {
		for r := 0; r < rows; r++ {
			if err := fn(r); err != nil {
				return err
			}
		}
		return nil
	}

	jobs := make(chan int)
	errs := make([]error, threads)
	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for r := range jobs {
				if errs[id] != nil {
					continue
				}
				errs[id] = fn(r)
			}
		}(i)
	}
	for r := 0; r < rows; r++ {
		jobs <- r
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
