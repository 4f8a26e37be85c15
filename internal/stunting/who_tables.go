package stunting

import (
	"github.com/andriansp/smartdesa-backend/internal/stunting/dto"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
)

// MinAgeMonths and MaxAgeMonths bound the WHO child growth standards carried
// here. Ages outside the table are a caller error, not a lookup miss.
const (
	MinAgeMonths = 0
	MaxAgeMonths = 60
)

func lookupStandards(gender enums.Gender, ageMonths int) (dto.Standards, bool) {
	if ageMonths < MinAgeMonths || ageMonths > MaxAgeMonths {
		return dto.Standards{}, false
	}
	switch gender {
	case enums.GenderBoys:
		return heightForAgeBoys[ageMonths], true
	case enums.GenderGirls:
		return heightForAgeGirls[ageMonths], true
	default:
		return dto.Standards{}, false
	}
}

// WHO Child Growth Standards, length/height-for-age, boys, 0-60 months.
// Values are centimeters; index is age in completed months.
var heightForAgeBoys = [MaxAgeMonths + 1]dto.Standards{
	{SD3neg: 44.2, SD2neg: 46.1, SD1neg: 48.0, Median: 49.9, SD1: 51.8, SD2: 53.7, SD3: 55.6},
	{SD3neg: 48.9, SD2neg: 50.8, SD1neg: 52.8, Median: 54.7, SD1: 56.7, SD2: 58.6, SD3: 60.6},
	{SD3neg: 52.4, SD2neg: 54.4, SD1neg: 56.4, Median: 58.4, SD1: 60.4, SD2: 62.4, SD3: 64.4},
	{SD3neg: 55.3, SD2neg: 57.3, SD1neg: 59.4, Median: 61.4, SD1: 63.5, SD2: 65.5, SD3: 67.6},
	{SD3neg: 57.6, SD2neg: 59.7, SD1neg: 61.8, Median: 63.9, SD1: 66.0, SD2: 68.0, SD3: 70.1},
	{SD3neg: 59.6, SD2neg: 61.7, SD1neg: 63.8, Median: 65.9, SD1: 68.0, SD2: 70.1, SD3: 72.2},
	{SD3neg: 61.2, SD2neg: 63.3, SD1neg: 65.5, Median: 67.6, SD1: 69.8, SD2: 71.9, SD3: 74.0},
	{SD3neg: 62.7, SD2neg: 64.8, SD1neg: 67.0, Median: 69.2, SD1: 71.3, SD2: 73.5, SD3: 75.7},
	{SD3neg: 64.0, SD2neg: 66.2, SD1neg: 68.4, Median: 70.6, SD1: 72.8, SD2: 75.0, SD3: 77.2},
	{SD3neg: 65.2, SD2neg: 67.5, SD1neg: 69.7, Median: 72.0, SD1: 74.2, SD2: 76.5, SD3: 78.7},
	{SD3neg: 66.4, SD2neg: 68.7, SD1neg: 71.0, Median: 73.3, SD1: 75.6, SD2: 77.9, SD3: 80.1},
	{SD3neg: 67.6, SD2neg: 69.9, SD1neg: 72.2, Median: 74.5, SD1: 76.9, SD2: 79.2, SD3: 81.5},
	{SD3neg: 68.6, SD2neg: 71.0, SD1neg: 73.4, Median: 75.7, SD1: 78.1, SD2: 80.5, SD3: 82.9},
	{SD3neg: 69.6, SD2neg: 72.1, SD1neg: 74.5, Median: 76.9, SD1: 79.3, SD2: 81.8, SD3: 84.2},
	{SD3neg: 70.6, SD2neg: 73.1, SD1neg: 75.6, Median: 78.0, SD1: 80.5, SD2: 83.0, SD3: 85.5},
	{SD3neg: 71.6, SD2neg: 74.1, SD1neg: 76.6, Median: 79.1, SD1: 81.7, SD2: 84.2, SD3: 86.7},
	{SD3neg: 72.5, SD2neg: 75.0, SD1neg: 77.6, Median: 80.2, SD1: 82.8, SD2: 85.4, SD3: 88.0},
	{SD3neg: 73.3, SD2neg: 76.0, SD1neg: 78.6, Median: 81.2, SD1: 83.9, SD2: 86.5, SD3: 89.2},
	{SD3neg: 74.2, SD2neg: 76.9, SD1neg: 79.6, Median: 82.3, SD1: 85.0, SD2: 87.7, SD3: 90.4},
	{SD3neg: 75.0, SD2neg: 77.7, SD1neg: 80.5, Median: 83.2, SD1: 86.0, SD2: 88.8, SD3: 91.5},
	{SD3neg: 75.8, SD2neg: 78.6, SD1neg: 81.4, Median: 84.2, SD1: 87.0, SD2: 89.8, SD3: 92.6},
	{SD3neg: 76.5, SD2neg: 79.4, SD1neg: 82.3, Median: 85.1, SD1: 88.0, SD2: 90.9, SD3: 93.8},
	{SD3neg: 77.2, SD2neg: 80.2, SD1neg: 83.1, Median: 86.0, SD1: 89.0, SD2: 91.9, SD3: 94.9},
	{SD3neg: 78.0, SD2neg: 81.0, SD1neg: 83.9, Median: 86.9, SD1: 89.9, SD2: 92.9, SD3: 95.9},
	{SD3neg: 78.0, SD2neg: 81.0, SD1neg: 84.1, Median: 87.1, SD1: 90.2, SD2: 93.2, SD3: 96.3},
	{SD3neg: 78.6, SD2neg: 81.7, SD1neg: 84.9, Median: 88.0, SD1: 91.1, SD2: 94.2, SD3: 97.3},
	{SD3neg: 79.3, SD2neg: 82.5, SD1neg: 85.6, Median: 88.8, SD1: 92.0, SD2: 95.2, SD3: 98.3},
	{SD3neg: 79.9, SD2neg: 83.1, SD1neg: 86.4, Median: 89.6, SD1: 92.9, SD2: 96.1, SD3: 99.3},
	{SD3neg: 80.5, SD2neg: 83.8, SD1neg: 87.1, Median: 90.4, SD1: 93.7, SD2: 97.0, SD3: 100.3},
	{SD3neg: 81.1, SD2neg: 84.5, SD1neg: 87.8, Median: 91.2, SD1: 94.5, SD2: 97.9, SD3: 101.2},
	{SD3neg: 81.7, SD2neg: 85.1, SD1neg: 88.5, Median: 91.9, SD1: 95.3, SD2: 98.7, SD3: 102.1},
	{SD3neg: 82.3, SD2neg: 85.7, SD1neg: 89.2, Median: 92.7, SD1: 96.1, SD2: 99.6, SD3: 103.0},
	{SD3neg: 82.8, SD2neg: 86.4, SD1neg: 89.9, Median: 93.4, SD1: 96.9, SD2: 100.4, SD3: 103.9},
	{SD3neg: 83.4, SD2neg: 86.9, SD1neg: 90.5, Median: 94.1, SD1: 97.6, SD2: 101.2, SD3: 104.8},
	{SD3neg: 83.9, SD2neg: 87.5, SD1neg: 91.1, Median: 94.8, SD1: 98.4, SD2: 102.0, SD3: 105.6},
	{SD3neg: 84.4, SD2neg: 88.1, SD1neg: 91.8, Median: 95.4, SD1: 99.1, SD2: 102.7, SD3: 106.4},
	{SD3neg: 85.0, SD2neg: 88.7, SD1neg: 92.4, Median: 96.1, SD1: 99.8, SD2: 103.5, SD3: 107.2},
	{SD3neg: 85.5, SD2neg: 89.2, SD1neg: 93.0, Median: 96.7, SD1: 100.5, SD2: 104.2, SD3: 108.0},
	{SD3neg: 86.0, SD2neg: 89.8, SD1neg: 93.6, Median: 97.4, SD1: 101.2, SD2: 105.0, SD3: 108.8},
	{SD3neg: 86.5, SD2neg: 90.3, SD1neg: 94.2, Median: 98.0, SD1: 101.8, SD2: 105.7, SD3: 109.5},
	{SD3neg: 87.0, SD2neg: 90.9, SD1neg: 94.7, Median: 98.6, SD1: 102.5, SD2: 106.4, SD3: 110.3},
	{SD3neg: 87.5, SD2neg: 91.4, SD1neg: 95.3, Median: 99.2, SD1: 103.2, SD2: 107.1, SD3: 111.0},
	{SD3neg: 88.0, SD2neg: 91.9, SD1neg: 95.9, Median: 99.9, SD1: 103.8, SD2: 107.8, SD3: 111.7},
	{SD3neg: 88.4, SD2neg: 92.4, SD1neg: 96.4, Median: 100.4, SD1: 104.5, SD2: 108.5, SD3: 112.5},
	{SD3neg: 88.9, SD2neg: 93.0, SD1neg: 97.0, Median: 101.0, SD1: 105.1, SD2: 109.1, SD3: 113.2},
	{SD3neg: 89.4, SD2neg: 93.5, SD1neg: 97.5, Median: 101.6, SD1: 105.7, SD2: 109.8, SD3: 113.9},
	{SD3neg: 89.8, SD2neg: 94.0, SD1neg: 98.1, Median: 102.2, SD1: 106.3, SD2: 110.4, SD3: 114.6},
	{SD3neg: 90.3, SD2neg: 94.4, SD1neg: 98.6, Median: 102.8, SD1: 106.9, SD2: 111.1, SD3: 115.2},
	{SD3neg: 90.7, SD2neg: 94.9, SD1neg: 99.1, Median: 103.3, SD1: 107.5, SD2: 111.7, SD3: 115.9},
	{SD3neg: 91.2, SD2neg: 95.4, SD1neg: 99.7, Median: 103.9, SD1: 108.1, SD2: 112.4, SD3: 116.6},
	{SD3neg: 91.6, SD2neg: 95.9, SD1neg: 100.2, Median: 104.4, SD1: 108.7, SD2: 113.0, SD3: 117.3},
	{SD3neg: 92.1, SD2neg: 96.4, SD1neg: 100.7, Median: 105.0, SD1: 109.3, SD2: 113.6, SD3: 117.9},
	{SD3neg: 92.5, SD2neg: 96.9, SD1neg: 101.2, Median: 105.6, SD1: 109.9, SD2: 114.2, SD3: 118.6},
	{SD3neg: 93.0, SD2neg: 97.4, SD1neg: 101.7, Median: 106.1, SD1: 110.5, SD2: 114.9, SD3: 119.2},
	{SD3neg: 93.4, SD2neg: 97.8, SD1neg: 102.3, Median: 106.7, SD1: 111.1, SD2: 115.5, SD3: 119.9},
	{SD3neg: 93.9, SD2neg: 98.3, SD1neg: 102.8, Median: 107.2, SD1: 111.7, SD2: 116.1, SD3: 120.6},
	{SD3neg: 94.3, SD2neg: 98.8, SD1neg: 103.3, Median: 107.8, SD1: 112.3, SD2: 116.7, SD3: 121.2},
	{SD3neg: 94.7, SD2neg: 99.3, SD1neg: 103.8, Median: 108.3, SD1: 112.8, SD2: 117.4, SD3: 121.9},
	{SD3neg: 95.2, SD2neg: 99.7, SD1neg: 104.3, Median: 108.9, SD1: 113.4, SD2: 118.0, SD3: 122.6},
	{SD3neg: 95.6, SD2neg: 100.2, SD1neg: 104.8, Median: 109.4, SD1: 114.0, SD2: 118.6, SD3: 123.2},
	{SD3neg: 96.1, SD2neg: 100.7, SD1neg: 105.3, Median: 110.0, SD1: 114.6, SD2: 119.2, SD3: 123.9},
}

// WHO Child Growth Standards, length/height-for-age, girls, 0-60 months.
var heightForAgeGirls = [MaxAgeMonths + 1]dto.Standards{
	{SD3neg: 43.6, SD2neg: 45.4, SD1neg: 47.3, Median: 49.1, SD1: 51.0, SD2: 52.9, SD3: 54.7},
	{SD3neg: 47.8, SD2neg: 49.8, SD1neg: 51.7, Median: 53.7, SD1: 55.6, SD2: 57.6, SD3: 59.5},
	{SD3neg: 51.0, SD2neg: 53.0, SD1neg: 55.0, Median: 57.1, SD1: 59.1, SD2: 61.1, SD3: 63.2},
	{SD3neg: 53.5, SD2neg: 55.6, SD1neg: 57.7, Median: 59.8, SD1: 61.9, SD2: 64.0, SD3: 66.1},
	{SD3neg: 55.6, SD2neg: 57.8, SD1neg: 59.9, Median: 62.1, SD1: 64.3, SD2: 66.4, SD3: 68.6},
	{SD3neg: 57.4, SD2neg: 59.6, SD1neg: 61.8, Median: 64.0, SD1: 66.2, SD2: 68.5, SD3: 70.7},
	{SD3neg: 58.9, SD2neg: 61.2, SD1neg: 63.5, Median: 65.7, SD1: 68.0, SD2: 70.3, SD3: 72.5},
	{SD3neg: 60.3, SD2neg: 62.7, SD1neg: 65.0, Median: 67.3, SD1: 69.6, SD2: 71.9, SD3: 74.2},
	{SD3neg: 61.7, SD2neg: 64.0, SD1neg: 66.4, Median: 68.7, SD1: 71.1, SD2: 73.5, SD3: 75.8},
	{SD3neg: 62.9, SD2neg: 65.3, SD1neg: 67.7, Median: 70.1, SD1: 72.6, SD2: 75.0, SD3: 77.4},
	{SD3neg: 64.1, SD2neg: 66.5, SD1neg: 69.0, Median: 71.5, SD1: 73.9, SD2: 76.4, SD3: 78.9},
	{SD3neg: 65.2, SD2neg: 67.7, SD1neg: 70.3, Median: 72.8, SD1: 75.3, SD2: 77.8, SD3: 80.3},
	{SD3neg: 66.3, SD2neg: 68.9, SD1neg: 71.4, Median: 74.0, SD1: 76.6, SD2: 79.2, SD3: 81.7},
	{SD3neg: 67.3, SD2neg: 70.0, SD1neg: 72.6, Median: 75.2, SD1: 77.8, SD2: 80.5, SD3: 83.1},
	{SD3neg: 68.3, SD2neg: 71.0, SD1neg: 73.7, Median: 76.4, SD1: 79.1, SD2: 81.7, SD3: 84.4},
	{SD3neg: 69.3, SD2neg: 72.0, SD1neg: 74.8, Median: 77.5, SD1: 80.2, SD2: 83.0, SD3: 85.7},
	{SD3neg: 70.2, SD2neg: 73.0, SD1neg: 75.8, Median: 78.6, SD1: 81.4, SD2: 84.2, SD3: 87.0},
	{SD3neg: 71.1, SD2neg: 74.0, SD1neg: 76.8, Median: 79.7, SD1: 82.5, SD2: 85.4, SD3: 88.2},
	{SD3neg: 72.0, SD2neg: 74.9, SD1neg: 77.8, Median: 80.7, SD1: 83.6, SD2: 86.5, SD3: 89.4},
	{SD3neg: 72.8, SD2neg: 75.8, SD1neg: 78.8, Median: 81.7, SD1: 84.7, SD2: 87.6, SD3: 90.6},
	{SD3neg: 73.7, SD2neg: 76.7, SD1neg: 79.7, Median: 82.7, SD1: 85.7, SD2: 88.7, SD3: 91.7},
	{SD3neg: 74.5, SD2neg: 77.5, SD1neg: 80.6, Median: 83.7, SD1: 86.7, SD2: 89.8, SD3: 92.9},
	{SD3neg: 75.2, SD2neg: 78.4, SD1neg: 81.5, Median: 84.6, SD1: 87.7, SD2: 90.8, SD3: 94.0},
	{SD3neg: 76.0, SD2neg: 79.2, SD1neg: 82.3, Median: 85.5, SD1: 88.7, SD2: 91.9, SD3: 95.0},
	{SD3neg: 76.0, SD2neg: 79.3, SD1neg: 82.5, Median: 85.7, SD1: 89.0, SD2: 92.2, SD3: 95.4},
	{SD3neg: 76.8, SD2neg: 80.0, SD1neg: 83.3, Median: 86.6, SD1: 89.9, SD2: 93.1, SD3: 96.4},
	{SD3neg: 77.5, SD2neg: 80.8, SD1neg: 84.1, Median: 87.4, SD1: 90.8, SD2: 94.1, SD3: 97.4},
	{SD3neg: 78.1, SD2neg: 81.5, SD1neg: 84.9, Median: 88.3, SD1: 91.7, SD2: 95.0, SD3: 98.4},
	{SD3neg: 78.8, SD2neg: 82.2, SD1neg: 85.7, Median: 89.1, SD1: 92.5, SD2: 96.0, SD3: 99.4},
	{SD3neg: 79.5, SD2neg: 82.9, SD1neg: 86.4, Median: 89.9, SD1: 93.4, SD2: 96.9, SD3: 100.3},
	{SD3neg: 80.1, SD2neg: 83.6, SD1neg: 87.1, Median: 90.7, SD1: 94.2, SD2: 97.7, SD3: 101.3},
	{SD3neg: 80.7, SD2neg: 84.3, SD1neg: 87.9, Median: 91.4, SD1: 95.0, SD2: 98.6, SD3: 102.2},
	{SD3neg: 81.3, SD2neg: 84.9, SD1neg: 88.6, Median: 92.2, SD1: 95.8, SD2: 99.4, SD3: 103.1},
	{SD3neg: 81.9, SD2neg: 85.6, SD1neg: 89.3, Median: 92.9, SD1: 96.6, SD2: 100.3, SD3: 103.9},
	{SD3neg: 82.5, SD2neg: 86.2, SD1neg: 89.9, Median: 93.6, SD1: 97.4, SD2: 101.1, SD3: 104.8},
	{SD3neg: 83.1, SD2neg: 86.8, SD1neg: 90.6, Median: 94.4, SD1: 98.1, SD2: 101.9, SD3: 105.6},
	{SD3neg: 83.6, SD2neg: 87.4, SD1neg: 91.2, Median: 95.1, SD1: 98.9, SD2: 102.7, SD3: 106.5},
	{SD3neg: 84.2, SD2neg: 88.0, SD1neg: 91.9, Median: 95.7, SD1: 99.6, SD2: 103.4, SD3: 107.3},
	{SD3neg: 84.7, SD2neg: 88.6, SD1neg: 92.5, Median: 96.4, SD1: 100.3, SD2: 104.2, SD3: 108.1},
	{SD3neg: 85.3, SD2neg: 89.2, SD1neg: 93.1, Median: 97.1, SD1: 101.0, SD2: 105.0, SD3: 108.9},
	{SD3neg: 85.8, SD2neg: 89.8, SD1neg: 93.8, Median: 97.7, SD1: 101.7, SD2: 105.7, SD3: 109.7},
	{SD3neg: 86.3, SD2neg: 90.4, SD1neg: 94.4, Median: 98.4, SD1: 102.4, SD2: 106.4, SD3: 110.5},
	{SD3neg: 86.8, SD2neg: 90.9, SD1neg: 95.0, Median: 99.0, SD1: 103.1, SD2: 107.2, SD3: 111.2},
	{SD3neg: 87.4, SD2neg: 91.5, SD1neg: 95.6, Median: 99.7, SD1: 103.8, SD2: 107.9, SD3: 112.0},
	{SD3neg: 87.9, SD2neg: 92.0, SD1neg: 96.2, Median: 100.3, SD1: 104.5, SD2: 108.6, SD3: 112.7},
	{SD3neg: 88.4, SD2neg: 92.5, SD1neg: 96.7, Median: 100.9, SD1: 105.1, SD2: 109.3, SD3: 113.5},
	{SD3neg: 88.9, SD2neg: 93.1, SD1neg: 97.3, Median: 101.5, SD1: 105.8, SD2: 110.0, SD3: 114.2},
	{SD3neg: 89.3, SD2neg: 93.6, SD1neg: 97.9, Median: 102.1, SD1: 106.4, SD2: 110.7, SD3: 114.9},
	{SD3neg: 89.8, SD2neg: 94.1, SD1neg: 98.4, Median: 102.7, SD1: 107.0, SD2: 111.3, SD3: 115.7},
	{SD3neg: 90.3, SD2neg: 94.6, SD1neg: 99.0, Median: 103.3, SD1: 107.7, SD2: 112.0, SD3: 116.4},
	{SD3neg: 90.7, SD2neg: 95.1, SD1neg: 99.5, Median: 103.9, SD1: 108.3, SD2: 112.7, SD3: 117.1},
	{SD3neg: 91.2, SD2neg: 95.6, SD1neg: 100.1, Median: 104.5, SD1: 108.9, SD2: 113.3, SD3: 117.7},
	{SD3neg: 91.7, SD2neg: 96.1, SD1neg: 100.6, Median: 105.0, SD1: 109.5, SD2: 114.0, SD3: 118.4},
	{SD3neg: 92.1, SD2neg: 96.6, SD1neg: 101.1, Median: 105.6, SD1: 110.1, SD2: 114.6, SD3: 119.1},
	{SD3neg: 92.6, SD2neg: 97.1, SD1neg: 101.6, Median: 106.2, SD1: 110.7, SD2: 115.2, SD3: 119.8},
	{SD3neg: 93.0, SD2neg: 97.6, SD1neg: 102.2, Median: 106.7, SD1: 111.3, SD2: 115.9, SD3: 120.4},
	{SD3neg: 93.4, SD2neg: 98.1, SD1neg: 102.7, Median: 107.3, SD1: 111.9, SD2: 116.5, SD3: 121.1},
	{SD3neg: 93.9, SD2neg: 98.5, SD1neg: 103.2, Median: 107.8, SD1: 112.5, SD2: 117.1, SD3: 121.8},
	{SD3neg: 94.3, SD2neg: 99.0, SD1neg: 103.7, Median: 108.4, SD1: 113.0, SD2: 117.7, SD3: 122.4},
	{SD3neg: 94.7, SD2neg: 99.5, SD1neg: 104.2, Median: 108.9, SD1: 113.6, SD2: 118.3, SD3: 123.1},
	{SD3neg: 95.2, SD2neg: 99.9, SD1neg: 104.7, Median: 109.4, SD1: 114.2, SD2: 118.9, SD3: 123.7},
}
