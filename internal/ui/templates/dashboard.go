package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Dashboard renders the single-page investor dashboard. Panels start as
// placeholders; datastar on-load hooks pull KPI cards, tables and chart
// signals from the SSE endpoints, and Chart.js draws from the signals.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardPage)
		return err
	})
}

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Kazungula Tourism Investment Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
body { margin: 0; background: #fffef9; color: #3d3328; font-family: Georgia, serif; }
header { padding: 24px 32px 8px; }
header h1 { margin: 0; }
header p { color: #6b5d3f; margin: 8px 0 0; }
main { padding: 16px 32px 48px; }
section { margin-bottom: 36px; }
section h2 { color: #6b5d3f; border-bottom: 1px solid #e8e2d4; padding-bottom: 6px; }
.kpi-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 16px; }
.kpi-card { background: white; border-radius: 8px; padding: 16px; box-shadow: 0 2px 8px rgba(107,93,63,.08); display: flex; flex-direction: column; }
.kpi-label { font-size: .85rem; color: #6b5d3f; }
.kpi-value { font-size: 1.5rem; font-weight: bold; margin-top: 4px; }
.kpi-delta { font-size: .8rem; color: #c17a5c; margin-top: 4px; }
.panel-grid { display: grid; grid-template-columns: 2fr 1fr; gap: 24px; }
.chart-box { background: white; border-radius: 8px; padding: 16px; box-shadow: 0 2px 8px rgba(107,93,63,.08); }
.modern-table { width: 100%; border-collapse: collapse; background: white; }
.modern-table th { text-align: left; color: #6b5d3f; border-bottom: 2px solid #c17a5c; padding: 8px; }
.modern-table td { padding: 8px; border-bottom: 1px solid #f0ece0; }
.roi-form { display: flex; gap: 16px; flex-wrap: wrap; align-items: end; }
.roi-form label { display: flex; flex-direction: column; font-size: .85rem; color: #6b5d3f; }
.roi-form input { padding: 6px; border: 1px solid #d4a574; border-radius: 4px; }
button { background: #c17a5c; color: white; border: none; border-radius: 4px; padding: 8px 16px; cursor: pointer; }
footer { padding: 16px 32px; color: #6b5d3f; font-size: .8rem; border-top: 1px solid #e8e2d4; }
</style>
</head>
<body data-signals="{arrivalsData: [], marketsData: [], seasonalityData: {buckets: []}, revenueData: [], breakdownData: []}">
<header>
<h1>Kazungula Tourism Investment Dashboard</h1>
<p>Strategic intelligence for tourism investors at the heart of KAZA TFCA.</p>
</header>
<main>

<section id="kpis">
<h2>Key Performance Indicators</h2>
<div id="kpi-content" data-on-load="@get('/sse/kpis')">Loading KPI data...</div>
</section>

<section id="arrivals">
<h2>Visitor Arrival Trends</h2>
<div class="panel-grid">
<div class="chart-box">
<canvas id="arrivals-chart" height="120"></canvas>
<div id="arrivals-content" data-on-load="@get('/sse/arrivals')">Loading arrivals data...</div>
</div>
<div class="chart-box">
<h3>Visitor Source Markets</h3>
<canvas id="markets-chart" height="200"></canvas>
<div id="markets-content" data-on-load="@get('/sse/source-markets')">Loading market data...</div>
</div>
</div>
</section>

<section id="seasonality">
<h2>Seasonality</h2>
<div class="chart-box">
<canvas id="seasonality-chart" height="100"></canvas>
<div id="seasonality-content" data-on-load="@get('/sse/seasonality')">Loading seasonality data...</div>
</div>
</section>

<section id="accommodation">
<h2>Accommodation &amp; Infrastructure</h2>
<div id="accommodation-content" data-on-load="@get('/sse/accommodation')">Loading facility data...</div>
</section>

<section id="revenue">
<h2>Revenue &amp; Economic Impact</h2>
<div class="chart-box">
<canvas id="revenue-chart" height="120"></canvas>
<div id="revenue-content" data-on-load="@get('/sse/revenue')">Loading revenue data...</div>
</div>
</section>

<section id="roi">
<h2>ROI Calculator</h2>
<form class="roi-form" onsubmit="runCalculator(event)">
<label>Initial Investment (USD)
<input type="number" id="roi-investment" min="100000" max="10000000" step="100000" value="2000000"/>
</label>
<label>Expected Occupancy Rate (%)
<input type="number" id="roi-occupancy" min="30" max="90" step="5" value="65"/>
</label>
<label>Average Daily Rate (USD)
<input type="number" id="roi-rate" min="50" max="500" step="10" value="150"/>
</label>
<button type="submit">Estimate</button>
</form>
<div id="roi-result"></div>
</section>

<section id="export">
<h2>Report Export</h2>
<p><a href="/api/export.xlsx">Download the investor report (XLSX)</a> or embed chart images:
<a href="/charts/arrivals.png">arrivals</a>,
<a href="/charts/markets.png">markets</a>,
<a href="/charts/seasonality.png">seasonality</a>,
<a href="/charts/revenue.png">revenue</a>.</p>
</section>

</main>
<footer>
Coverage: Kazungula District, Zambia &middot; Data: Ministry of Tourism, KAZA TFCA, border-post statistics &middot; Sample data is shown when no CSV files are configured.
</footer>

<script>
const charts = {};

function lineChart(id, labels, datasets) {
	if (charts[id]) charts[id].destroy();
	charts[id] = new Chart(document.getElementById(id), {
		type: 'line',
		data: { labels: labels, datasets: datasets },
		options: { responsive: true, interaction: { mode: 'index' } }
	});
}

function drawArrivals(series) {
	if (!series || !series.length) return;
	lineChart('arrivals-chart', series.map(m => m.month), [
		{ label: 'Total', data: series.map(m => m.total), borderColor: '#c17a5c', fill: false },
		{ label: 'International', data: series.map(m => m.international), borderColor: '#d4a574', borderDash: [6, 4], fill: false },
		{ label: 'Regional (SADC)', data: series.map(m => m.regional), borderColor: '#b8860b', borderDash: [6, 4], fill: false }
	]);
}

function drawMarkets(markets) {
	if (!markets || !markets.length) return;
	if (charts['markets-chart']) charts['markets-chart'].destroy();
	charts['markets-chart'] = new Chart(document.getElementById('markets-chart'), {
		type: 'pie',
		data: {
			labels: markets.map(m => m.market),
			datasets: [{ data: markets.map(m => m.arrivals) }]
		}
	});
}

function drawSeasonality(s) {
	if (!s || !s.buckets || !s.buckets.length) return;
	if (charts['seasonality-chart']) charts['seasonality-chart'].destroy();
	charts['seasonality-chart'] = new Chart(document.getElementById('seasonality-chart'), {
		type: 'bar',
		data: {
			labels: s.buckets.map(b => b.month),
			datasets: [{ label: 'Avg Arrivals', data: s.buckets.map(b => b.avg_arrivals), backgroundColor: '#c17a5c' }]
		}
	});
}

function drawRevenue(series) {
	if (!series || !series.length) return;
	lineChart('revenue-chart', series.map(m => m.month), [
		{ label: 'Total Revenue', data: series.map(m => m.total_usd), borderColor: '#c17a5c', fill: false },
		{ label: 'Accommodation', data: series.map(m => m.accommodation_usd), borderColor: '#d4a574', borderDash: [6, 4], fill: false },
		{ label: 'Activities & Tours', data: series.map(m => m.activities_usd), borderColor: '#b8860b', borderDash: [6, 4], fill: false }
	]);
}

document.addEventListener('datastar-signal-patch', ev => {
	const s = ev.detail || {};
	drawArrivals(s.arrivalsData);
	drawMarkets(s.marketsData);
	drawSeasonality(s.seasonalityData);
	drawRevenue(s.revenueData);
});

async function runCalculator(ev) {
	ev.preventDefault();
	const params = new URLSearchParams({
		investment: document.getElementById('roi-investment').value,
		occupancy: document.getElementById('roi-occupancy').value,
		rate: document.getElementById('roi-rate').value
	});
	const res = await fetch('/api/roi?' + params);
	const body = await res.json();
	const out = document.getElementById('roi-result');
	if (!body.success) {
		out.textContent = body.error ? body.error.message : 'Calculation failed';
		return;
	}
	const e = body.data;
	out.innerHTML = '<table class="modern-table"><tbody>' +
		'<tr><td>Est. Annual Revenue</td><td>$' + Math.round(e.annual_revenue_usd).toLocaleString() + '</td></tr>' +
		'<tr><td>Est. Annual Net Profit</td><td>$' + Math.round(e.net_profit_usd).toLocaleString() + '</td></tr>' +
		'<tr><td>Payback Period</td><td>' + (e.payback_years ? e.payback_years.toFixed(1) + ' years' : 'N/A') + '</td></tr>' +
		'<tr><td>Annual ROI</td><td>' + (e.annual_roi_pct ? e.annual_roi_pct.toFixed(1) + '%' : 'N/A') + '</td></tr>' +
		'</tbody></table>';
}
</script>
</body>
</html>
`
